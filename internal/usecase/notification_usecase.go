package usecase

import (
	"context"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
)

// SubscribeInput targets either an incident or a category; exactly one of
// the two ids must be set.
type SubscribeInput struct {
	IncidentID string `json:"incident_id,omitempty" validate:"required_without=CategoryID,excluded_with=CategoryID"`
	CategoryID string `json:"category_id,omitempty"`
}

// NotificationUsecase covers the notification inbox. Overlapping poll ticks
// may issue duplicate concurrent List calls; the operations are read-only or
// idempotent so callers can tolerate that.
type NotificationUsecase interface {
	List(ctx context.Context) envelope.Result[[]entity.Notification]
	MarkRead(ctx context.Context, id string) envelope.Result[*entity.Notification]
	MarkAllRead(ctx context.Context) envelope.Result[any]
}

// SubscriptionUsecase manages incident/category subscriptions.
type SubscriptionUsecase interface {
	List(ctx context.Context) envelope.Result[[]entity.Subscription]
	Subscribe(ctx context.Context, input SubscribeInput) envelope.Result[*entity.Subscription]
	Unsubscribe(ctx context.Context, id string) envelope.Result[any]
}

// StatisticsUsecase exposes the aggregate dashboards.
type StatisticsUsecase interface {
	// PublicIncidentStatistics is the anonymous landing-page aggregate.
	PublicIncidentStatistics(ctx context.Context) envelope.Result[*entity.IncidentStatistics]

	// IncidentStatistics is the authenticated dashboard aggregate.
	IncidentStatistics(ctx context.Context) envelope.Result[*entity.IncidentStatistics]
}
