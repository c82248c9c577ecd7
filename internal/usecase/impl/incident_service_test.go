package impl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"beacon/internal/domain/entity"
	"beacon/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentService_ListForwardsFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/incidents/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("status"))
		assert.Equal(t, "c1", r.URL.Query().Get("category"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode([]entity.Incident{{ID: "i1", Title: "Broken light"}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestGateway(t, server.URL)
	store.SetSession(&entity.User{ID: "u1"}, "at1", "rt1")
	incidents := NewIncidentService(client, NewValidator(), discardLogger())

	res := incidents.List(context.Background(), usecase.ListIncidentsOptions{
		Status:     "open",
		CategoryID: "c1",
		Page:       2,
	})
	require.True(t, res.Success, res.Message)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Broken light", res.Data[0].Title)
}

func TestIncidentService_PublicListSendsNoBearer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/public/incidents/", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestGateway(t, server.URL)
	store.SetSession(&entity.User{ID: "u1"}, "at1", "rt1")
	incidents := NewIncidentService(client, NewValidator(), discardLogger())

	res := incidents.PublicList(context.Background(), usecase.ListIncidentsOptions{})
	assert.True(t, res.Success, res.Message)
}

func TestIncidentService_VoteSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/incident-votes/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body usecase.VoteInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "i1", body.IncidentID)
		assert.True(t, body.UpVoted)

		json.NewEncoder(w).Encode(entity.IncidentVote{ID: "v1", IncidentID: "i1", UpVoted: true})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestGateway(t, server.URL)
	store.SetSession(&entity.User{ID: "u1"}, "at1", "rt1")
	incidents := NewIncidentService(client, NewValidator(), discardLogger())

	res := incidents.Vote(context.Background(), usecase.VoteInput{IncidentID: "i1", UpVoted: true})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "v1", res.Data.ID)
}

func TestIncidentService_TransportFailureIsFailedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, store := newTestGateway(t, server.URL)
	store.SetSession(&entity.User{ID: "u1"}, "at1", "rt1")
	server.Close()

	incidents := NewIncidentService(client, NewValidator(), discardLogger())

	res := incidents.Vote(context.Background(), usecase.VoteInput{IncidentID: "i1", UpVoted: true})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message, "failure always carries a message")
}

func TestIncidentService_SatisfactionRatingRange(t *testing.T) {
	client, store := newTestGateway(t, "http://unreachable.invalid")
	store.SetSession(&entity.User{ID: "u1"}, "at1", "rt1")
	incidents := NewIncidentService(client, NewValidator(), discardLogger())

	res := incidents.RateSatisfaction(context.Background(), usecase.SatisfactionInput{IncidentID: "i1", Rating: 6})
	assert.False(t, res.Success)
	assert.Equal(t, "rating must be at most 5", res.Message)
}

func TestIncidentService_GetRequiresID(t *testing.T) {
	client, _ := newTestGateway(t, "http://unreachable.invalid")
	incidents := NewIncidentService(client, NewValidator(), discardLogger())

	res := incidents.Get(context.Background(), "")
	assert.False(t, res.Success)
	assert.Equal(t, "incident id is required", res.Message)
}

func TestIncidentService_DeleteReturnsEmptySuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/incidents/i1/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestGateway(t, server.URL)
	store.SetSession(&entity.User{ID: "u1"}, "at1", "rt1")
	incidents := NewIncidentService(client, NewValidator(), discardLogger())

	res := incidents.Delete(context.Background(), "i1")
	assert.True(t, res.Success, res.Message)
	assert.Empty(t, res.Message)
}
