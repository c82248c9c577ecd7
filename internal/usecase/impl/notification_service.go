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

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	client *api.Client
	logger *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(client *api.Client, logger *slog.Logger) usecase.NotificationUsecase {
	return &notificationService{client: client, logger: logger}
}

func (srv *notificationService) List(ctx context.Context) envelope.Result[[]entity.Notification] {
	var notifications []entity.Notification
	if err := srv.client.Get(ctx, "notifications/", &notifications); err != nil {
		return envelope.Failure[[]entity.Notification](err, "unable to load notifications")
	}

	return envelope.Ok(notifications)
}

func (srv *notificationService) MarkRead(ctx context.Context, id string) envelope.Result[*entity.Notification] {
	if id == "" {
		return envelope.Err[*entity.Notification]("notification id is required")
	}

	body := map[string]bool{"is_read": true}
	var updated entity.Notification
	if err := srv.client.Patch(ctx, "notifications/"+id+"/", body, &updated); err != nil {
		return envelope.Failure[*entity.Notification](err, "unable to mark the notification as read")
	}

	return envelope.Ok(&updated)
}

func (srv *notificationService) MarkAllRead(ctx context.Context) envelope.Result[any] {
	if err := srv.client.Post(ctx, "notifications/mark-all-read/", nil, nil); err != nil {
		return envelope.Failure[any](err, "unable to mark notifications as read")
	}

	return envelope.OkEmpty[any]()
}

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	client   *api.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(
	client *api.Client,
	validate *validator.Validate,
	logger *slog.Logger,
) usecase.SubscriptionUsecase {
	return &subscriptionService{client: client, validate: validate, logger: logger}
}

func (srv *subscriptionService) List(ctx context.Context) envelope.Result[[]entity.Subscription] {
	var subscriptions []entity.Subscription
	if err := srv.client.Get(ctx, "subscriptions/", &subscriptions); err != nil {
		return envelope.Failure[[]entity.Subscription](err, "unable to load subscriptions")
	}

	return envelope.Ok(subscriptions)
}

func (srv *subscriptionService) Subscribe(ctx context.Context, input usecase.SubscribeInput) envelope.Result[*entity.Subscription] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Subscription](validationMessage(err))
	}

	var created entity.Subscription
	if err := srv.client.Post(ctx, "subscriptions/", input, &created); err != nil {
		srv.logger.Warn("Subscribe failed", slog.Any("error", err))

		return envelope.Failure[*entity.Subscription](err, "unable to create the subscription")
	}

	return envelope.Ok(&created)
}

func (srv *subscriptionService) Unsubscribe(ctx context.Context, id string) envelope.Result[any] {
	if id == "" {
		return envelope.Err[any]("subscription id is required")
	}

	if err := srv.client.Delete(ctx, "subscriptions/"+id+"/", nil); err != nil {
		return envelope.Failure[any](err, "unable to remove the subscription")
	}

	return envelope.OkEmpty[any]()
}

// statisticsService implements the StatisticsUsecase interface.
type statisticsService struct {
	client *api.Client
	logger *slog.Logger
}

// NewStatisticsService is the constructor for statisticsService.
func NewStatisticsService(client *api.Client, logger *slog.Logger) usecase.StatisticsUsecase {
	return &statisticsService{client: client, logger: logger}
}

func (srv *statisticsService) PublicIncidentStatistics(ctx context.Context) envelope.Result[*entity.IncidentStatistics] {
	var stats entity.IncidentStatistics
	if err := srv.client.Get(ctx, "public/incident-statistics/", &stats, api.Public()); err != nil {
		return envelope.Failure[*entity.IncidentStatistics](err, "unable to load incident statistics")
	}

	return envelope.Ok(&stats)
}

func (srv *statisticsService) IncidentStatistics(ctx context.Context) envelope.Result[*entity.IncidentStatistics] {
	var stats entity.IncidentStatistics
	if err := srv.client.Get(ctx, "incident-statistics/", &stats); err != nil {
		return envelope.Failure[*entity.IncidentStatistics](err, "unable to load incident statistics")
	}

	return envelope.Ok(&stats)
}
