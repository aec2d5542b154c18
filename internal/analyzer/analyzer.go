// Package analyzer implements the query-analysis engine behind the
// optimizer and index-advisor pages. It inspects a SQL query with a set of
// lexical heuristics — join and subquery counts, missing-index signals from
// WHERE and ORDER BY clauses, rewrite opportunities, execution-plan risks —
// and produces optimization recommendations and a performance estimate.
//
// The analysis is deliberately static: it never connects to a database or
// reads a live execution plan, so the same query always yields the same
// result.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reJoin        = regexp.MustCompile(`(?i)\bJOIN\b`)
	reSubquery    = regexp.MustCompile(`(?is)\bSELECT\b.*\bFROM\b.*\(.*?\bSELECT\b`)
	reAggregate   = regexp.MustCompile(`(?i)\b(COUNT|SUM|AVG|MAX|MIN|GROUP BY)\b`)
	reBoolean     = regexp.MustCompile(`(?i)\bAND\b|\bOR\b`)
	reSelectStar  = regexp.MustCompile(`(?i)SELECT\s+\*`)
	reLimit       = regexp.MustCompile(`(?i)LIMIT\s+\d+`)
	reImplicit    = regexp.MustCompile(`(?i)WHERE\s+.*=.*AND.*=.*`)
	reDistinct    = regexp.MustCompile(`(?i)DISTINCT`)
	reGroupBy     = regexp.MustCompile(`(?i)GROUP\s+BY`)
	reNotIn       = regexp.MustCompile(`(?i)NOT\s+IN`)
	reWhereClause = regexp.MustCompile(`(?is)WHERE\s+(.+?)(?:ORDER|GROUP|LIMIT|$)`)
	reWhereColumn = regexp.MustCompile(`(\w+)\s*=\s*`)
	reOrderClause = regexp.MustCompile(`(?is)ORDER\s+BY\s+(.+?)(?:LIMIT|$)`)
	reWord        = regexp.MustCompile(`\w+`)
	reLeadingLike = regexp.MustCompile(`(?i)WHERE\s+\w+\s+LIKE\s+['"]%`)
	reColumnFunc  = regexp.MustCompile(`(?i)(LOWER|UPPER|SUBSTRING|DATE|TRIM)\s*\(\s*(\w+)`)
	reNumString   = regexp.MustCompile(`(?i)\w+\s*=\s*['"]\d+['"]`)
	reTableRef    = regexp.MustCompile(`(?i)FROM\s+(\w+)|JOIN\s+(\w+)`)
)

// Analysis is the full result of analyzing one query.
type Analysis struct {
	OriginalQuery        string   `json:"original_query"`
	OptimizedQuery       string   `json:"optimized_query"`
	ComplexityScore      int      `json:"complexity_score"`
	Improvements         []string `json:"improvements"`
	Issues               []string `json:"issues"`
	EstimatedImprovement int      `json:"estimated_improvement"`
	IndexRecommendations []string `json:"index_recommendations"`
	RewriteSuggestions   []string `json:"rewrite_suggestions"`
}

// IndexSuggestion is one table-level index recommendation derived from the
// query's WHERE-clause columns.
type IndexSuggestion struct {
	TableName            string   `json:"table_name"`
	ColumnNames          []string `json:"column_names"`
	IndexType            string   `json:"index_type"`
	Reason               string   `json:"reason"`
	EstimatedImprovement int      `json:"estimated_improvement"`
	Priority             string   `json:"priority"`
}

// PerformanceEstimate summarises the expected runtime characteristics of a
// query without executing it.
type PerformanceEstimate struct {
	QueryComplexity        int      `json:"query_complexity"`
	EstimatedCost          float64  `json:"estimated_cost"`
	FullTableScanRisk      bool     `json:"full_table_scan_risk"`
	MissingIndexes         []string `json:"missing_indexes"`
	SuggestedOptimizations []string `json:"suggested_optimizations"`
}

// ComplexityScore rates a query's structural complexity from 0 to 100.
// Joins weigh 10, subqueries 15, aggregates 8, a wildcard projection 10,
// and each boolean connective in WHERE clauses 3.
func ComplexityScore(query string) int {
	score := 0
	score += len(reJoin.FindAllString(query, -1)) * 10
	score += len(reSubquery.FindAllString(query, -1)) * 15
	score += len(reAggregate.FindAllString(query, -1)) * 8
	if strings.Contains(query, "*") {
		score += 10
	}
	score += len(reBoolean.FindAllString(query, -1)) * 3
	if score > 100 {
		score = 100
	}
	return score
}

// MissingIndexes lists columns that look like they would benefit from an
// index: equality predicates in WHERE clauses and leading ORDER BY columns.
func MissingIndexes(query string) []string {
	var missing []string

	for _, m := range reWhereClause.FindAllStringSubmatch(query, -1) {
		for _, col := range reWhereColumn.FindAllStringSubmatch(m[1], -1) {
			name := col[1]
			if name == "id" || name == "ID" || strings.HasPrefix(name, "_") {
				continue
			}
			missing = append(missing, "Consider index on column: "+name)
		}
	}

	for _, m := range reOrderClause.FindAllStringSubmatch(query, -1) {
		cols := reWord.FindAllString(m[1], -1)
		// Only the leading columns of a sort key can use an index.
		if len(cols) > 2 {
			cols = cols[:2]
		}
		for _, col := range cols {
			if col == "ASC" || col == "DESC" {
				continue
			}
			missing = append(missing, "Consider index for ORDER BY: "+col)
		}
	}

	return missing
}

// RewriteSuggestions lists query rewrites that typically improve
// performance.
func RewriteSuggestions(query string) []string {
	var suggestions []string
	upper := strings.ToUpper(query)

	if reSelectStar.MatchString(query) {
		suggestions = append(suggestions, "Replace SELECT * with specific column names")
	}
	if !reLimit.MatchString(query) && !strings.Contains(upper, "INSERT") {
		suggestions = append(suggestions, "Add LIMIT clause to prevent large result sets")
	}
	if reImplicit.MatchString(query) && !strings.Contains(upper, "JOIN") {
		suggestions = append(suggestions, "Consider using explicit JOIN syntax instead of comma-separated tables")
	}
	if reDistinct.MatchString(query) && reGroupBy.MatchString(query) {
		suggestions = append(suggestions, "DISTINCT is redundant with GROUP BY - consider removing one")
	}
	if reNotIn.MatchString(query) {
		suggestions = append(suggestions, "Consider using NOT EXISTS instead of NOT IN for better performance")
	}

	return suggestions
}

// ExecutionPlanRisks lists constructs that defeat index usage or force full
// table scans.
func ExecutionPlanRisks(query string) []string {
	var risks []string

	if reLeadingLike.MatchString(query) {
		risks = append(risks, "Leading wildcard LIKE pattern will cause full table scan")
	}
	for _, m := range reColumnFunc.FindAllStringSubmatch(query, -1) {
		risks = append(risks, fmt.Sprintf("Function %s() on column %s prevents index usage", strings.ToUpper(m[1]), m[2]))
	}
	if reNumString.MatchString(query) {
		risks = append(risks, "Implicit type conversion may prevent index usage")
	}

	return risks
}

// Analyze runs the full analysis pipeline over one query.
func Analyze(query string) Analysis {
	missing := MissingIndexes(query)
	risks := ExecutionPlanRisks(query)
	rewrites := RewriteSuggestions(query)
	upper := strings.ToUpper(query)

	var improvements []string
	if strings.Contains(upper, "SELECT *") {
		improvements = append(improvements, "Select specific columns instead of *")
	}
	if !strings.Contains(upper, "LIMIT") {
		improvements = append(improvements, "Add LIMIT clause to control result set size")
	}
	if len(missing) > 0 {
		top := missing
		if len(top) > 3 {
			top = top[:3]
		}
		improvements = append(improvements, top...)
	}

	estimated := 30 + len(improvements)*10 + len(missing)*5
	if estimated > 95 {
		estimated = 95
	}

	indexRecs := missing
	if len(indexRecs) > 5 {
		indexRecs = indexRecs[:5]
	}

	return Analysis{
		OriginalQuery:        query,
		OptimizedQuery:       query,
		ComplexityScore:      ComplexityScore(query),
		Improvements:         improvements,
		Issues:               risks,
		EstimatedImprovement: estimated,
		IndexRecommendations: indexRecs,
		RewriteSuggestions:   rewrites,
	}
}

// RecommendIndexes derives per-table index suggestions from the query's
// table references and WHERE-clause equality columns.
func RecommendIndexes(query string) []IndexSuggestion {
	var tables []string
	seen := make(map[string]bool)
	for _, m := range reTableRef.FindAllStringSubmatch(query, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tables = append(tables, name)
	}

	var whereCols []string
	for _, m := range reWhereClause.FindAllStringSubmatch(query, -1) {
		for _, col := range reWhereColumn.FindAllStringSubmatch(m[1], -1) {
			whereCols = append(whereCols, col[1])
		}
	}
	if len(whereCols) == 0 {
		return nil
	}

	cols := whereCols
	if len(cols) > 2 {
		cols = cols[:2]
	}
	improvement := 20 + len(whereCols)*10
	if improvement > 80 {
		improvement = 80
	}
	priority := "Medium"
	if len(whereCols) > 1 {
		priority = "High"
	}

	recs := make([]IndexSuggestion, 0, len(tables))
	for _, table := range tables {
		recs = append(recs, IndexSuggestion{
			TableName:            table,
			ColumnNames:          cols,
			IndexType:            "B-tree",
			Reason:               "Frequently used in WHERE clauses",
			EstimatedImprovement: improvement,
			Priority:             priority,
		})
	}
	return recs
}

// EstimatePerformance produces a cost estimate and risk summary for a query.
func EstimatePerformance(query string) PerformanceEstimate {
	complexity := ComplexityScore(query)
	missing := MissingIndexes(query)
	risks := ExecutionPlanRisks(query)

	fullScan := false
	for _, r := range risks {
		if strings.Contains(strings.ToLower(r), "full table scan") {
			fullScan = true
			break
		}
	}

	cols := make([]string, len(missing))
	for i, m := range missing {
		parts := strings.Split(m, ":")
		cols[i] = strings.TrimSpace(parts[len(parts)-1])
	}

	return PerformanceEstimate{
		QueryComplexity:        complexity,
		EstimatedCost:          float64(complexity)*1.5 + float64(len(missing))*10,
		FullTableScanRisk:      fullScan,
		MissingIndexes:         cols,
		SuggestedOptimizations: RewriteSuggestions(query),
	}
}
