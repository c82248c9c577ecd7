package entity

// Team groups security personnel who triage and resolve incidents.
type Team struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Lead        *User        `json:"lead,omitempty"`
	Members     []TeamMember `json:"members,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
}

// TeamMember links a user to a team.
type TeamMember struct {
	ID       string `json:"id"`
	TeamID   string `json:"team_id"`
	User     *User  `json:"user,omitempty"`
	JoinedAt string `json:"joined_at,omitempty"`
}
