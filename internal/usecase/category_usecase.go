package usecase

import (
	"context"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
)

// CategoryInput creates or replaces an incident category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	ColorCode   string `json:"color_code,omitempty"`
}

// CategoryPatch partially updates a category; empty fields are omitted.
type CategoryPatch struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ColorCode   string `json:"color_code,omitempty"`
}

// CategoryUsecase covers the public category listing and the admin CRUD
// surface behind /incident-categories/admin/.
type CategoryUsecase interface {
	List(ctx context.Context) envelope.Result[[]entity.Category]
	AdminList(ctx context.Context) envelope.Result[[]entity.Category]
	AdminCreate(ctx context.Context, input CategoryInput) envelope.Result[*entity.Category]
	AdminGet(ctx context.Context, id string) envelope.Result[*entity.Category]
	AdminUpdate(ctx context.Context, id string, input CategoryInput) envelope.Result[*entity.Category]
	AdminPatch(ctx context.Context, id string, patch CategoryPatch) envelope.Result[*entity.Category]
	AdminDelete(ctx context.Context, id string) envelope.Result[any]
}
