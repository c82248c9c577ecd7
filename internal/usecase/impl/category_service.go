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

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	client   *api.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(
	client *api.Client,
	validate *validator.Validate,
	logger *slog.Logger,
) usecase.CategoryUsecase {
	return &categoryService{
		client:   client,
		validate: validate,
		logger:   logger,
	}
}

func (srv *categoryService) List(ctx context.Context) envelope.Result[[]entity.Category] {
	var categories []entity.Category
	if err := srv.client.Get(ctx, "incident-categories/", &categories); err != nil {
		return envelope.Failure[[]entity.Category](err, "unable to load categories")
	}

	return envelope.Ok(categories)
}

func (srv *categoryService) AdminList(ctx context.Context) envelope.Result[[]entity.Category] {
	var categories []entity.Category
	if err := srv.client.Get(ctx, "incident-categories/admin/", &categories); err != nil {
		return envelope.Failure[[]entity.Category](err, "unable to load categories")
	}

	return envelope.Ok(categories)
}

func (srv *categoryService) AdminCreate(ctx context.Context, input usecase.CategoryInput) envelope.Result[*entity.Category] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Category](validationMessage(err))
	}

	var created entity.Category
	if err := srv.client.Post(ctx, "incident-categories/admin/", input, &created); err != nil {
		srv.logger.Warn("Category create failed", slog.String("name", input.Name), slog.Any("error", err))

		return envelope.Failure[*entity.Category](err, "unable to create the category")
	}

	return envelope.Ok(&created)
}

func (srv *categoryService) AdminGet(ctx context.Context, id string) envelope.Result[*entity.Category] {
	if id == "" {
		return envelope.Err[*entity.Category]("category id is required")
	}

	var category entity.Category
	if err := srv.client.Get(ctx, "incident-categories/admin/"+id+"/", &category); err != nil {
		return envelope.Failure[*entity.Category](err, "unable to load the category")
	}

	return envelope.Ok(&category)
}

func (srv *categoryService) AdminUpdate(ctx context.Context, id string, input usecase.CategoryInput) envelope.Result[*entity.Category] {
	if id == "" {
		return envelope.Err[*entity.Category]("category id is required")
	}
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Category](validationMessage(err))
	}

	var updated entity.Category
	if err := srv.client.Put(ctx, "incident-categories/admin/"+id+"/", input, &updated); err != nil {
		return envelope.Failure[*entity.Category](err, "unable to update the category")
	}

	return envelope.Ok(&updated)
}

func (srv *categoryService) AdminPatch(ctx context.Context, id string, patch usecase.CategoryPatch) envelope.Result[*entity.Category] {
	if id == "" {
		return envelope.Err[*entity.Category]("category id is required")
	}

	var updated entity.Category
	if err := srv.client.Patch(ctx, "incident-categories/admin/"+id+"/", patch, &updated); err != nil {
		return envelope.Failure[*entity.Category](err, "unable to update the category")
	}

	return envelope.Ok(&updated)
}

func (srv *categoryService) AdminDelete(ctx context.Context, id string) envelope.Result[any] {
	if id == "" {
		return envelope.Err[any]("category id is required")
	}

	if err := srv.client.Delete(ctx, "incident-categories/admin/"+id+"/", nil); err != nil {
		return envelope.Failure[any](err, "unable to delete the category")
	}

	return envelope.OkEmpty[any]()
}
