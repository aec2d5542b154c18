package records

// PerformancePoint is one sample on the dashboard's 24-hour performance
// chart.
type PerformancePoint struct {
	Time    string `json:"time" yaml:"time"`
	Queries int    `json:"queries" yaml:"queries"`
	Latency int    `json:"latency" yaml:"latency"`
	CPU     int    `json:"cpu" yaml:"cpu"`
}

// EngineShare is one slice of the dashboard's database-type distribution
// chart. Color is the hex token the chart renders the slice with.
type EngineShare struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

// SlowQuery is one row of the dashboard's slow-query table.
type SlowQuery struct {
	ID       string `json:"id" yaml:"id"`
	Query    string `json:"query" yaml:"query"`
	Duration string `json:"duration" yaml:"duration"`
	Rows     string `json:"rows" yaml:"rows"`
	LastRun  string `json:"lastRun" yaml:"last_run"`
}
