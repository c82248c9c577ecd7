// Package entity contains the client-side views of the remote server's
// resources. The client owns no authoritative state; these types mirror the
// wire format and are replaced wholesale on refetch, never partially mutated
// outside the session store.
package entity

// User is the identity/profile snapshot held by the session.
type User struct {
	ID                        string `json:"id"`
	FirstName                 string `json:"first_name"`
	LastName                  string `json:"last_name"`
	MiddleName                string `json:"middle_name,omitempty"`
	Email                     string `json:"email"`
	Username                  string `json:"username"`
	Department                string `json:"department,omitempty"`
	Bio                       string `json:"bio,omitempty"`
	ProfilePicture            string `json:"profile_picture,omitempty"`
	Role                      *Role  `json:"role,omitempty"`
	DateJoined                string `json:"date_joined,omitempty"`
	NumberOfReportedIncidents int    `json:"number_of_reported_incidents,omitempty"`
}

// Role represents a server-assigned role such as "student", "security" or "admin".
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}
