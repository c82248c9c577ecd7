package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
	"beacon/internal/infra/api"
	"beacon/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// incidentService implements the IncidentUsecase interface.
type incidentService struct {
	client   *api.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewIncidentService is the constructor for incidentService.
func NewIncidentService(
	client *api.Client,
	validate *validator.Validate,
	logger *slog.Logger,
) usecase.IncidentUsecase {
	return &incidentService{
		client:   client,
		validate: validate,
		logger:   logger,
	}
}

func (srv *incidentService) List(ctx context.Context, opts usecase.ListIncidentsOptions) envelope.Result[[]entity.Incident] {
	var incidents []entity.Incident
	if err := srv.client.Get(ctx, "incidents/", &incidents, api.WithQuery(listQuery(opts))); err != nil {
		return envelope.Failure[[]entity.Incident](err, "unable to load incidents")
	}

	return envelope.Ok(incidents)
}

// PublicList serves the anonymous landing page; no bearer header and no
// refresh machinery are involved.
func (srv *incidentService) PublicList(ctx context.Context, opts usecase.ListIncidentsOptions) envelope.Result[[]entity.Incident] {
	var incidents []entity.Incident
	if err := srv.client.Get(ctx, "public/incidents/", &incidents, api.Public(), api.WithQuery(listQuery(opts))); err != nil {
		return envelope.Failure[[]entity.Incident](err, "unable to load incidents")
	}

	return envelope.Ok(incidents)
}

func (srv *incidentService) Get(ctx context.Context, id string) envelope.Result[*entity.Incident] {
	if id == "" {
		return envelope.Err[*entity.Incident]("incident id is required")
	}

	var incident entity.Incident
	if err := srv.client.Get(ctx, "incidents/"+id+"/", &incident); err != nil {
		return envelope.Failure[*entity.Incident](err, "unable to load the incident")
	}

	return envelope.Ok(&incident)
}

func (srv *incidentService) Report(ctx context.Context, input usecase.ReportIncidentInput) envelope.Result[*entity.Incident] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Incident](validationMessage(err))
	}

	var created entity.Incident
	if err := srv.client.Post(ctx, "incidents/", input, &created); err != nil {
		srv.logger.Warn("Incident report failed", slog.String("title", input.Title), slog.Any("error", err))

		return envelope.Failure[*entity.Incident](err, "unable to report the incident")
	}
	srv.logger.Info("Incident reported", slog.String("id", created.ID))

	return envelope.Ok(&created)
}

// ReportAnonymous files without attaching the reporter. The endpoint still
// requires authentication; the server simply withholds the reporter identity
// from the stored record.
func (srv *incidentService) ReportAnonymous(ctx context.Context, input usecase.ReportIncidentInput) envelope.Result[*entity.Incident] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Incident](validationMessage(err))
	}

	var created entity.Incident
	if err := srv.client.Post(ctx, "anonymous/incidents/", input, &created); err != nil {
		return envelope.Failure[*entity.Incident](err, "unable to report the incident")
	}

	return envelope.Ok(&created)
}

func (srv *incidentService) Update(ctx context.Context, id string, input usecase.UpdateIncidentInput) envelope.Result[*entity.Incident] {
	if id == "" {
		return envelope.Err[*entity.Incident]("incident id is required")
	}

	var updated entity.Incident
	if err := srv.client.Patch(ctx, "incidents/"+id+"/", input, &updated); err != nil {
		return envelope.Failure[*entity.Incident](err, "unable to update the incident")
	}

	return envelope.Ok(&updated)
}

func (srv *incidentService) Delete(ctx context.Context, id string) envelope.Result[any] {
	if id == "" {
		return envelope.Err[any]("incident id is required")
	}

	if err := srv.client.Delete(ctx, "incidents/"+id+"/", nil); err != nil {
		return envelope.Failure[any](err, "unable to delete the incident")
	}

	return envelope.OkEmpty[any]()
}

func (srv *incidentService) MyReports(ctx context.Context) envelope.Result[[]entity.Incident] {
	var incidents []entity.Incident
	if err := srv.client.Get(ctx, "incidents/my-reports/", &incidents); err != nil {
		return envelope.Failure[[]entity.Incident](err, "unable to load your reports")
	}

	return envelope.Ok(incidents)
}

func (srv *incidentService) Vote(ctx context.Context, input usecase.VoteInput) envelope.Result[*entity.IncidentVote] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.IncidentVote](validationMessage(err))
	}

	var vote entity.IncidentVote
	if err := srv.client.Post(ctx, "incident-votes/", input, &vote); err != nil {
		return envelope.Failure[*entity.IncidentVote](err, "unable to record the vote")
	}

	return envelope.Ok(&vote)
}

func (srv *incidentService) RateSatisfaction(ctx context.Context, input usecase.SatisfactionInput) envelope.Result[*entity.Incident] {
	if err := srv.validate.Struct(input); err != nil {
		return envelope.Err[*entity.Incident](validationMessage(err))
	}

	var updated entity.Incident
	if err := srv.client.Patch(ctx, "incidents/"+input.IncidentID+"/satisfaction/", input, &updated); err != nil {
		return envelope.Failure[*entity.Incident](err, "unable to record the satisfaction rating")
	}

	return envelope.Ok(&updated)
}

func listQuery(opts usecase.ListIncidentsOptions) url.Values {
	values := url.Values{}
	if opts.Status != "" {
		values.Set("status", opts.Status)
	}
	if opts.CategoryID != "" {
		values.Set("category", opts.CategoryID)
	}
	if opts.Search != "" {
		values.Set("search", opts.Search)
	}
	if opts.Page > 0 {
		values.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(opts.PageSize))
	}

	return values
}
