// Package usecase declares the typed operation catalog the UI layer consumes.
// Every operation returns the envelope, never an error: transport and server
// failures are normalized into `{success:false, message}` at this boundary.
package usecase

import (
	"context"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
// Registration does not log the user in; they must still authenticate.
type SignupInput struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	MiddleName string `json:"middle_name,omitempty"`
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department,omitempty"`
}

// LoginInput defines the credentials posted to the login endpoint.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CompletePasswordResetInput carries the emailed reset token and the
// replacement password.
type CompletePasswordResetInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ProfilePicture is an optional image upload attached to a profile update.
type ProfilePicture struct {
	FileName string
	Content  []byte
}

// UpdateProfileInput is the multipart profile-update payload. Zero-valued
// fields are omitted from the form so the server keeps their current values.
type UpdateProfileInput struct {
	FirstName  string
	LastName   string
	MiddleName string
	Department string
	Bio        string
	Picture    *ProfilePicture
}

// --- Output DTOs ---

// LoginData is the payload of a successful login.
type LoginData struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access"`
	RefreshToken string       `json:"refresh"`
}

// TokenRefreshData is the payload of a successful token exchange.
type TokenRefreshData struct {
	AccessToken string `json:"access"`
}

// AuthUsecase holds the authentication transitions of the session store.
type AuthUsecase interface {
	// Signup registers a new account without altering the session.
	Signup(ctx context.Context, input SignupInput) envelope.Result[*entity.User]

	// Login authenticates and, on success, installs the session.
	Login(ctx context.Context, input LoginInput) envelope.Result[*LoginData]

	// Logout clears the session. Purely client-side; calling it twice
	// produces the same final state as calling it once.
	Logout(ctx context.Context) envelope.Result[any]

	// InitiatePasswordReset asks the server to email a reset token.
	InitiatePasswordReset(ctx context.Context, email string) envelope.Result[any]

	// CompletePasswordReset exchanges the reset token for a new password.
	CompletePasswordReset(ctx context.Context, input CompletePasswordResetInput) envelope.Result[any]

	// RefreshAccessToken exchanges a refresh token for a new access token.
	// It does not mutate the session; the caller decides whether to persist
	// the new token, which keeps the call side-effect-free and retryable.
	RefreshAccessToken(ctx context.Context, refreshToken string) envelope.Result[TokenRefreshData]

	// UpdateProfile performs the multipart profile update and returns the
	// updated snapshot; the caller decides whether to merge it.
	UpdateProfile(ctx context.Context, input UpdateProfileInput) envelope.Result[*entity.User]

	// CurrentUser refetches the authenticated user's profile.
	CurrentUser(ctx context.Context) envelope.Result[*entity.User]
}
