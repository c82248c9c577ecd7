package impl

import (
	"context"
	"log/slog"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
	"beacon/internal/infra/api"
	"beacon/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// userAdminService implements the UserAdminUsecase interface.
type userAdminService struct {
	client *api.Client
	logger *slog.Logger
}

// NewUserAdminService is the constructor for userAdminService.
func NewUserAdminService(client *api.Client, logger *slog.Logger) usecase.UserAdminUsecase {
	return &userAdminService{client: client, logger: logger}
}

func (srv *userAdminService) List(ctx context.Context) envelope.Result[[]entity.User] {
	var users []entity.User
	if err := srv.client.Get(ctx, "users/", &users); err != nil {
		return envelope.Failure[[]entity.User](err, "unable to load users")
	}

	return envelope.Ok(users)
}

func (srv *userAdminService) Get(ctx context.Context, id string) envelope.Result[*entity.User] {
	if id == "" {
		return envelope.Err[*entity.User]("user id is required")
	}

	var user entity.User
	if err := srv.client.Get(ctx, "users/"+id+"/", &user); err != nil {
		return envelope.Failure[*entity.User](err, "unable to load the user")
	}

	return envelope.Ok(&user)
}

func (srv *userAdminService) Delete(ctx context.Context, id string) envelope.Result[any] {
	if id == "" {
		return envelope.Err[any]("user id is required")
	}

	if err := srv.client.Delete(ctx, "users/"+id+"/", nil); err != nil {
		srv.logger.Warn("User delete failed", slog.String("id", id), slog.Any("error", err))

		return envelope.Failure[any](err, "unable to delete the user")
	}
	srv.logger.Info("User deleted", slog.String("id", id))

	return envelope.OkEmpty[any]()
}

func (srv *userAdminService) AssignRole(ctx context.Context, userID, roleID string) envelope.Result[*entity.User] {
	if userID == "" || roleID == "" {
		return envelope.Err[*entity.User]("user id and role id are required")
	}

	body := map[string]string{"role_id": roleID}
	var updated entity.User
	if err := srv.client.Patch(ctx, "users/"+userID+"/role/", body, &updated); err != nil {
		return envelope.Failure[*entity.User](err, "unable to assign the role")
	}

	return envelope.Ok(&updated)
}

// roleService implements the RoleUsecase interface.
type roleService struct {
	client   *api.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRoleService is the constructor for roleService.
func NewRoleService(
	client *api.Client,
	validate *validator.Validate,
	logger *slog.Logger,
) usecase.RoleUsecase {
	return &roleService{client: client, validate: validate, logger: logger}
}

func (srv *roleService) List(ctx context.Context) envelope.Result[[]entity.Role] {
	var roles []entity.Role
	if err := srv.client.Get(ctx, "roles/", &roles); err != nil {
		return envelope.Failure[[]entity.Role](err, "unable to load roles")
	}

	return envelope.Ok(roles)
}

func (srv *roleService) Create(ctx context.Context, input usecase.RoleInput) envelope.Result[*entity.Role] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Role](validationMessage(err))
	}

	var created entity.Role
	if err := srv.client.Post(ctx, "roles/", input, &created); err != nil {
		return envelope.Failure[*entity.Role](err, "unable to create the role")
	}

	return envelope.Ok(&created)
}

func (srv *roleService) Update(ctx context.Context, id string, input usecase.RoleInput) envelope.Result[*entity.Role] {
	if id == "" {
		return envelope.Err[*entity.Role]("role id is required")
	}
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Role](validationMessage(err))
	}

	var updated entity.Role
	if err := srv.client.Put(ctx, "roles/"+id+"/", input, &updated); err != nil {
		return envelope.Failure[*entity.Role](err, "unable to update the role")
	}

	return envelope.Ok(&updated)
}

func (srv *roleService) Delete(ctx context.Context, id string) envelope.Result[any] {
	if id == "" {
		return envelope.Err[any]("role id is required")
	}

	if err := srv.client.Delete(ctx, "roles/"+id+"/", nil); err != nil {
		return envelope.Failure[any](err, "unable to delete the role")
	}

	return envelope.OkEmpty[any]()
}

// teamService implements the TeamUsecase interface.
type teamService struct {
	client   *api.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewTeamService is the constructor for teamService.
func NewTeamService(
	client *api.Client,
	validate *validator.Validate,
	logger *slog.Logger,
) usecase.TeamUsecase {
	return &teamService{client: client, validate: validate, logger: logger}
}

func (srv *teamService) List(ctx context.Context) envelope.Result[[]entity.Team] {
	var teams []entity.Team
	if err := srv.client.Get(ctx, "teams/", &teams); err != nil {
		return envelope.Failure[[]entity.Team](err, "unable to load teams")
	}

	return envelope.Ok(teams)
}

func (srv *teamService) Create(ctx context.Context, input usecase.TeamInput) envelope.Result[*entity.Team] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Team](validationMessage(err))
	}

	var created entity.Team
	if err := srv.client.Post(ctx, "teams/", input, &created); err != nil {
		return envelope.Failure[*entity.Team](err, "unable to create the team")
	}

	return envelope.Ok(&created)
}

func (srv *teamService) Update(ctx context.Context, id string, input usecase.TeamInput) envelope.Result[*entity.Team] {
	if id == "" {
		return envelope.Err[*entity.Team]("team id is required")
	}
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Team](validationMessage(err))
	}

	var updated entity.Team
	if err := srv.client.Put(ctx, "teams/"+id+"/", input, &updated); err != nil {
		return envelope.Failure[*entity.Team](err, "unable to update the team")
	}

	return envelope.Ok(&updated)
}

func (srv *teamService) Delete(ctx context.Context, id string) envelope.Result[any] {
	if id == "" {
		return envelope.Err[any]("team id is required")
	}

	if err := srv.client.Delete(ctx, "teams/"+id+"/", nil); err != nil {
		return envelope.Failure[any](err, "unable to delete the team")
	}

	return envelope.OkEmpty[any]()
}

func (srv *teamService) AddMember(ctx context.Context, teamID, userID string) envelope.Result[*entity.TeamMember] {
	if teamID == "" || userID == "" {
		return envelope.Err[*entity.TeamMember]("team id and user id are required")
	}

	body := map[string]string{"user_id": userID}
	var member entity.TeamMember
	if err := srv.client.Post(ctx, "teams/"+teamID+"/members/", body, &member); err != nil {
		return envelope.Failure[*entity.TeamMember](err, "unable to add the team member")
	}

	return envelope.Ok(&member)
}

func (srv *teamService) RemoveMember(ctx context.Context, teamID, memberID string) envelope.Result[any] {
	if teamID == "" || memberID == "" {
		return envelope.Err[any]("team id and member id are required")
	}

	if err := srv.client.Delete(ctx, "teams/"+teamID+"/members/"+memberID+"/", nil); err != nil {
		return envelope.Failure[any](err, "unable to remove the team member")
	}

	return envelope.OkEmpty[any]()
}
