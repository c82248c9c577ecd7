package usecase

import (
	"context"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
)

// RoleInput creates or replaces a role.
type RoleInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// TeamInput creates or replaces a response team.
type TeamInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	LeadID      string `json:"lead_id,omitempty"`
}

// UserAdminUsecase is the administrator view over user accounts.
type UserAdminUsecase interface {
	List(ctx context.Context) envelope.Result[[]entity.User]
	Get(ctx context.Context, id string) envelope.Result[*entity.User]
	Delete(ctx context.Context, id string) envelope.Result[any]
	AssignRole(ctx context.Context, userID, roleID string) envelope.Result[*entity.User]
}

// RoleUsecase manages the role catalog.
type RoleUsecase interface {
	List(ctx context.Context) envelope.Result[[]entity.Role]
	Create(ctx context.Context, input RoleInput) envelope.Result[*entity.Role]
	Update(ctx context.Context, id string, input RoleInput) envelope.Result[*entity.Role]
	Delete(ctx context.Context, id string) envelope.Result[any]
}

// TeamUsecase manages response teams and their membership.
type TeamUsecase interface {
	List(ctx context.Context) envelope.Result[[]entity.Team]
	Create(ctx context.Context, input TeamInput) envelope.Result[*entity.Team]
	Update(ctx context.Context, id string, input TeamInput) envelope.Result[*entity.Team]
	Delete(ctx context.Context, id string) envelope.Result[any]
	AddMember(ctx context.Context, teamID, userID string) envelope.Result[*entity.TeamMember]
	RemoveMember(ctx context.Context, teamID, memberID string) envelope.Result[any]
}
