package entity

// Notification is a server-generated message for the current user.
type Notification struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"message"`
	IncidentID string `json:"incident_id,omitempty"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Subscription subscribes the current user to updates on an incident or category.
type Subscription struct {
	ID         string `json:"id"`
	IncidentID string `json:"incident_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}
