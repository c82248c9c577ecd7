package impl

import (
	"context"
	"log/slog"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
	"beacon/internal/infra/api"
	"beacon/internal/session"
	"beacon/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// authService implements the AuthUsecase interface.
type authService struct {
	client   *api.Client
	store    *session.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	client *api.Client,
	store *session.Store,
	validate *validator.Validate,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		client:   client,
		store:    store,
		validate: validate,
		logger:   logger,
	}
}

// Signup registers a new account. The session is not touched: the server
// requires a fresh login after registration.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) envelope.Result[*entity.User] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.User](validationMessage(err))
	}

	var created entity.User
	if err := srv.client.Post(ctx, "auth/register/", input, &created, api.Public()); err != nil {
		srv.logger.Warn("Signup failed", slog.String("username", input.Username), slog.Any("error", err))

		return envelope.Failure[*entity.User](err, "unable to sign up at this time")
	}
	srv.logger.Info("Account registered", slog.String("username", input.Username))

	return envelope.Ok(&created)
}

// Login posts credentials and installs the session on success.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) envelope.Result[*usecase.LoginData] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*usecase.LoginData](validationMessage(err))
	}

	var data usecase.LoginData
	if err := srv.client.Post(ctx, "auth/login/", input, &data, api.Public()); err != nil {
		srv.logger.Warn("Login failed", slog.String("username", input.Username), slog.Any("error", err))

		return envelope.Failure[*usecase.LoginData](err, "login failed, please check your credentials")
	}

	srv.store.SetSession(data.User, data.AccessToken, data.RefreshToken)
	srv.logger.Info("Logged in", slog.String("username", input.Username))

	return envelope.Ok(&data)
}

// Logout clears the session. There is no server call: access tokens are
// short-lived and the refresh token is dropped along with the snapshot.
func (srv *authService) Logout(_ context.Context) envelope.Result[any] {
	srv.store.Clear()
	srv.logger.Info("Logged out")

	return envelope.OkEmpty[any]()
}

// InitiatePasswordReset is fire-and-report; no session mutation.
func (srv *authService) InitiatePasswordReset(ctx context.Context, email string) envelope.Result[any] {
	if err := srv.validate.Var(email, "required,email"); err != nil {
		return envelope.Err[any]("a valid email address is required")
	}

	body := map[string]string{"email": email}
	if err := srv.client.Post(ctx, "auth/initiate-password-reset/", body, nil, api.Public()); err != nil {
		return envelope.Failure[any](err, "unable to start a password reset")
	}

	return envelope.OkEmpty[any]()
}

// CompletePasswordReset is fire-and-report; no session mutation.
func (srv *authService) CompletePasswordReset(ctx context.Context, input usecase.CompletePasswordResetInput) envelope.Result[any] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[any](validationMessage(err))
	}

	if err := srv.client.Post(ctx, "auth/complete-password-reset/", input, nil, api.Public()); err != nil {
		return envelope.Failure[any](err, "unable to reset the password")
	}

	return envelope.OkEmpty[any]()
}

// RefreshAccessToken exchanges a refresh token for a new access token
// without mutating the session; the interceptor owns persistence of the new
// token, which keeps this call retryable.
func (srv *authService) RefreshAccessToken(ctx context.Context, refreshToken string) envelope.Result[usecase.TokenRefreshData] {
	if refreshToken == "" {
		return envelope.Err[usecase.TokenRefreshData]("refresh token is required")
	}

	body := map[string]string{"refresh": refreshToken}
	var data usecase.TokenRefreshData
	if err := srv.client.Post(ctx, "token/refresh/", body, &data, api.Public()); err != nil {
		return envelope.Failure[usecase.TokenRefreshData](err, "unable to refresh the session")
	}

	return envelope.Ok(data)
}

// UpdateProfile performs the multipart update and returns the fresh
// snapshot. The UI decides whether to merge it into the session; callers
// that want the store updated refetch via CurrentUser.
func (srv *authService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) envelope.Result[*entity.User] {
	fields := map[string]string{}
	setIfPresent(fields, "first_name", input.FirstName)
	setIfPresent(fields, "last_name", input.LastName)
	setIfPresent(fields, "middle_name", input.MiddleName)
	setIfPresent(fields, "department", input.Department)
	setIfPresent(fields, "bio", input.Bio)

	files := map[string]api.FilePart{}
	if input.Picture != nil {
		files["profile_picture"] = api.FilePart{
			FileName: input.Picture.FileName,
			Content:  input.Picture.Content,
		}
	}

	var updated entity.User
	if err := srv.client.PutMultipart(ctx, "users/profile/", fields, files, &updated); err != nil {
		srv.logger.Warn("Profile update failed", slog.Any("error", err))

		return envelope.Failure[*entity.User](err, "unable to update the profile")
	}

	return envelope.Ok(&updated)
}

// CurrentUser refetches the authenticated profile and replaces the session's
// user snapshot wholesale.
func (srv *authService) CurrentUser(ctx context.Context) envelope.Result[*entity.User] {
	var user entity.User
	if err := srv.client.Get(ctx, "users/profile/", &user); err != nil {
		return envelope.Failure[*entity.User](err, "unable to load the profile")
	}

	srv.store.SetUser(&user)

	return envelope.Ok(&user)
}

func setIfPresent(fields map[string]string, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
