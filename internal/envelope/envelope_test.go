package envelope

import (
	"testing"

	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestOk(t *testing.T) {
	res := Ok("payload")

	assert.True(t, res.Success)
	assert.Equal(t, "payload", res.Data)
	assert.Empty(t, res.Message)

	failed, _ := res.Failed()
	assert.False(t, failed)
}

func TestOkEmpty(t *testing.T) {
	res := OkEmpty[struct{}]()

	assert.True(t, res.Success)
	assert.Empty(t, res.Message)
}

func TestErr_DefaultsEmptyMessage(t *testing.T) {
	res := Err[string]("")

	assert.False(t, res.Success)
	assert.Equal(t, "something went wrong, please try again", res.Message)
}

func TestFailure_MessageResolutionOrder(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server detail wins",
			err:  &domainerrors.APIError{StatusCode: 401, Detail: "Invalid credentials"},
			want: "Invalid credentials",
		},
		{
			name: "first field message of first sorted key",
			err: &domainerrors.APIError{
				StatusCode: 400,
				Fields: map[string][]string{
					"username": {"already taken"},
					"email":    {"invalid address", "second"},
				},
			},
			want: "invalid address",
		},
		{
			name: "wrapped api error still resolves",
			err:  errors.Wrap(&domainerrors.APIError{StatusCode: 404, Detail: "Not found"}, "fetch incident"),
			want: "Not found",
		},
		{
			name: "transport error uses its own text",
			err:  errors.New("request failed: connection refused"),
			want: "request failed: connection refused",
		},
		{
			name: "nil error falls back",
			err:  nil,
			want: "could not load incidents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Failure[[]string](tt.err, "could not load incidents")

			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Message)
		})
	}
}
