package usecase

import (
	"context"

	"beacon/internal/domain/entity"
	"beacon/internal/envelope"
)

// --- Input DTOs ---

// ReportIncidentInput defines a new incident report.
type ReportIncidentInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	CategoryID  string  `json:"category_id,omitempty"`
	Location    string  `json:"location,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

// UpdateIncidentInput carries a partial incident update; empty fields are
// omitted from the request body.
type UpdateIncidentInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
}

// VoteInput records an up or down vote on an incident.
type VoteInput struct {
	IncidentID string `json:"incident_id" validate:"required"`
	UpVoted    bool   `json:"up_voted"`
}

// SatisfactionInput rates how satisfied the reporter is with the resolution.
type SatisfactionInput struct {
	IncidentID string `json:"-" validate:"required"`
	Rating     int    `json:"satisfaction_rating" validate:"required,min=1,max=5"`
}

// ListIncidentsOptions narrows incident listings. All fields are optional.
type ListIncidentsOptions struct {
	Status     string
	CategoryID string
	Search     string
	Page       int
	PageSize   int
}

// IncidentUsecase is the incident family of the operation catalog.
type IncidentUsecase interface {
	// List fetches incidents visible to the authenticated user.
	List(ctx context.Context, opts ListIncidentsOptions) envelope.Result[[]entity.Incident]

	// PublicList fetches the anonymous/public incident feed; no auth header.
	PublicList(ctx context.Context, opts ListIncidentsOptions) envelope.Result[[]entity.Incident]

	// Get fetches one incident by id.
	Get(ctx context.Context, id string) envelope.Result[*entity.Incident]

	// Report files a new incident under the current user.
	Report(ctx context.Context, input ReportIncidentInput) envelope.Result[*entity.Incident]

	// ReportAnonymous files an incident without attaching the reporter.
	ReportAnonymous(ctx context.Context, input ReportIncidentInput) envelope.Result[*entity.Incident]

	// Update patches an incident (status transitions, triage edits).
	Update(ctx context.Context, id string, input UpdateIncidentInput) envelope.Result[*entity.Incident]

	// Delete removes an incident. Success carries no data.
	Delete(ctx context.Context, id string) envelope.Result[any]

	// MyReports fetches the incidents reported by the current user.
	MyReports(ctx context.Context) envelope.Result[[]entity.Incident]

	// Vote casts an up/down vote.
	Vote(ctx context.Context, input VoteInput) envelope.Result[*entity.IncidentVote]

	// RateSatisfaction records the reporter's satisfaction with resolution.
	RateSatisfaction(ctx context.Context, input SatisfactionInput) envelope.Result[*entity.Incident]
}
