package records

import (
	"gopkg.in/yaml.v3"

	"github.com/kingtech/dboptima/internal/collection"
)

// Impact ranks how much an index recommendation is expected to help.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Impact) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "recommendation impact", ImpactHigh, ImpactMedium, ImpactLow)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// RecommendationStatus is the review state of an index recommendation.
// Applied and rejected are both terminal.
type RecommendationStatus string

const (
	RecommendationPending  RecommendationStatus = "pending"
	RecommendationApplied  RecommendationStatus = "applied"
	RecommendationRejected RecommendationStatus = "rejected"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *RecommendationStatus) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "recommendation status",
		RecommendationPending, RecommendationApplied, RecommendationRejected)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// RecommendationRules: pending may be applied or rejected; nothing moves
// out of either terminal state.
var RecommendationRules = collection.Rules[RecommendationStatus]{
	RecommendationPending: {RecommendationApplied, RecommendationRejected},
}

// IndexRecommendation is one entry on the index-advisor page.
type IndexRecommendation struct {
	ID        string   `json:"id" yaml:"id"`
	TableName string   `json:"tableName" yaml:"table_name"`
	Columns   []string `json:"columns" yaml:"columns"`
	// Type is a human-readable index type label, e.g. "B-tree Composite".
	Type   string `json:"type" yaml:"type"`
	Reason string `json:"reason" yaml:"reason"`
	Impact Impact `json:"impact" yaml:"impact"`
	// EstimatedImprovement is a percentage in [0, 100].
	EstimatedImprovement int                  `json:"estimatedImprovement" yaml:"estimated_improvement"`
	CreatedAt            string               `json:"createdAt" yaml:"created_at"`
	Status               RecommendationStatus `json:"status" yaml:"status"`
}

// Key implements collection.Record.
func (r IndexRecommendation) Key() string { return r.ID }

// CurrentStatus implements collection.Statused.
func (r IndexRecommendation) CurrentStatus() RecommendationStatus { return r.Status }

// WithStatus implements collection.Statused.
func (r IndexRecommendation) WithStatus(s RecommendationStatus) IndexRecommendation {
	r.Status = s
	return r
}

// RecommendationSearchFields lists the text fields the index-advisor page
// searches over: the table name and every indexed column.
func RecommendationSearchFields(r IndexRecommendation) []string {
	fields := make([]string, 0, len(r.Columns)+1)
	fields = append(fields, r.TableName)
	return append(fields, r.Columns...)
}
