package entity

// Session is the client's record of the authenticated user and tokens.
// Invariant: IsAuthenticated is true exactly when both AccessToken and User
// are set. The session store re-derives this on every mutation and on
// rehydration, so a corrupted snapshot can never claim authentication
// without a token.
type Session struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	AccessToken     string `json:"accessToken"`
	RefreshToken    string `json:"refreshToken"`
}

// Valid reports whether the session satisfies its own invariant.
func (s Session) Valid() bool {
	return s.IsAuthenticated == (s.AccessToken != "" && s.User != nil)
}
