package usecase

import (
	"context"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
)

// PostCommentInput attaches a chat comment to an incident.
type PostCommentInput struct {
	IncidentID string `json:"incident" validate:"required"`
	Body       string `json:"comment" validate:"required"`
}

// CommentUsecase is the comment family of the operation catalog.
type CommentUsecase interface {
	Post(ctx context.Context, input PostCommentInput) envelope.Result[*entity.Comment]
	Get(ctx context.Context, id string) envelope.Result[*entity.Comment]
	ListForIncident(ctx context.Context, incidentID string) envelope.Result[[]entity.Comment]
	Delete(ctx context.Context, id string) envelope.Result[any]
}
