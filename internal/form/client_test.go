package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simoncdt/vericoupon/internal/model"
)

func testRequest() *model.CreateRegistrationRequest {
	return &model.CreateRegistrationRequest{
		Surname:      "Durand",
		GivenName:    "Jean",
		ProviderName: "PCS",
		Codes:        []string{"1111222233334444"},
		Amounts:      []string{"10"},
	}
}

func TestClient_Submit_Success(t *testing.T) {
	var gotPath string
	var gotBody model.CreateRegistrationRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Enregistrement réussi",
			"data": model.Registration{
				ID:           "11111111-1111-1111-1111-111111111111",
				Surname:      "Durand",
				GivenName:    "Jean",
				ProviderName: "PCS",
				Coupons:      []model.Coupon{{Code: "1111222233334444"}},
				CreatedAt:    time.Now().UTC(),
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	reg, err := client.Submit(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "/enregistrement", gotPath)
	assert.Equal(t, "Durand", gotBody.Surname)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", reg.ID)
}

func TestClient_Submit_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "invalid request: surname is required",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Submit(context.Background(), testRequest())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid request: surname is required", ve.Message)
}

func TestClient_Submit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Submit(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrServer)
}

func TestClient_Submit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, time.Second)
	_, err := client.Submit(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_Submit_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Submit(ctx, testRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport) || errors.Is(err, context.DeadlineExceeded))
}
