package entity

// Incident is a reported safety incident as returned by the server.
type Incident struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Status             string    `json:"status,omitempty"`
	Priority           string    `json:"priority,omitempty"`
	Location           string    `json:"location,omitempty"`
	Latitude           float64   `json:"latitude,omitempty"`
	Longitude          float64   `json:"longitude,omitempty"`
	Category           *Category `json:"category,omitempty"`
	ReportedBy         *User     `json:"reported_by,omitempty"`
	AssignedTeam       *Team     `json:"assigned_team,omitempty"`
	UpVotes            int       `json:"up_votes,omitempty"`
	DownVotes          int       `json:"down_votes,omitempty"`
	SatisfactionRating int       `json:"satisfaction_rating,omitempty"`
	IsAnonymous        bool      `json:"is_anonymous,omitempty"`
	CreatedAt          string    `json:"created_at,omitempty"`
	UpdatedAt          string    `json:"updated_at,omitempty"`
}

// IncidentVote records a single up/down vote on an incident.
type IncidentVote struct {
	ID         string `json:"id"`
	IncidentID string `json:"incident_id"`
	UpVoted    bool   `json:"up_voted"`
	VotedBy    string `json:"voted_by,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Category classifies incidents (the UI calls these tags).
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ColorCode   string `json:"color_code,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Comment is a chat message attached to an incident.
type Comment struct {
	ID         string `json:"id"`
	IncidentID string `json:"incident"`
	Author     *User  `json:"author,omitempty"`
	Body       string `json:"comment"`
	CreatedAt  string `json:"created_at,omitempty"`
}
