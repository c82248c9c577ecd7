package entity

// IncidentStatistics is the aggregate view rendered on dashboards.
// The server owns the aggregation; the client returns it verbatim.
type IncidentStatistics struct {
	Total      int            `json:"total"`
	Open       int            `json:"open"`
	InProgress int            `json:"in_progress"`
	Resolved   int            `json:"resolved"`
	ByCategory map[string]int `json:"by_category,omitempty"`
	ByStatus   map[string]int `json:"by_status,omitempty"`
	ByMonth    map[string]int `json:"by_month,omitempty"`
}
