package impl

import (
	"context"
	"log/slog"
	"net/url"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
	"beacon/internal/infra/api"
	"beacon/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	client   *api.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(
	client *api.Client,
	validate *validator.Validate,
	logger *slog.Logger,
) usecase.CommentUsecase {
	return &commentService{
		client:   client,
		validate: validate,
		logger:   logger,
	}
}

func (srv *commentService) Post(ctx context.Context, input usecase.PostCommentInput) envelope.Result[*entity.Comment] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Comment](validationMessage(err))
	}

	var created entity.Comment
	if err := srv.client.Post(ctx, "chat/comments/", input, &created); err != nil {
		srv.logger.Warn("Comment post failed", slog.String("incident", input.IncidentID), slog.Any("error", err))

		return envelope.Failure[*entity.Comment](err, "unable to post the comment")
	}

	return envelope.Ok(&created)
}

func (srv *commentService) Get(ctx context.Context, id string) envelope.Result[*entity.Comment] {
	if id == "" {
		return envelope.Err[*entity.Comment]("comment id is required")
	}

	var comment entity.Comment
	if err := srv.client.Get(ctx, "chat/comments/"+id+"/", &comment); err != nil {
		return envelope.Failure[*entity.Comment](err, "unable to load the comment")
	}

	return envelope.Ok(&comment)
}

func (srv *commentService) ListForIncident(ctx context.Context, incidentID string) envelope.Result[[]entity.Comment] {
	if incidentID == "" {
		return envelope.Err[[]entity.Comment]("incident id is required")
	}

	query := url.Values{}
	query.Set("incident", incidentID)

	var comments []entity.Comment
	if err := srv.client.Get(ctx, "chat/comments/", &comments, api.WithQuery(query)); err != nil {
		return envelope.Failure[[]entity.Comment](err, "unable to load comments")
	}

	return envelope.Ok(comments)
}

func (srv *commentService) Delete(ctx context.Context, id string) envelope.Result[any] {
	if id == "" {
		return envelope.Err[any]("comment id is required")
	}

	if err := srv.client.Delete(ctx, "chat/comments/"+id+"/", nil); err != nil {
		return envelope.Failure[any](err, "unable to delete the comment")
	}

	return envelope.OkEmpty[any]()
}
