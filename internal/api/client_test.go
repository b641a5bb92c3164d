package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...func(*Options)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	o := Options{BaseURL: srv.URL + "/api/v1"}
	for _, fn := range opts {
		fn(&o)
	}
	return NewClient(o, StaticToken("tok-123"), NoopObserver{})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetSendsAuthAndDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		writeJSON(w, http.StatusOK, domain.Profile{ID: "u1", Name: "Robin", CreatedAt: 1700000000})
	})

	p, err := client.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Robin", p.Name)
	assert.Equal(t, int64(1700000000), p.CreatedAt)
}

func TestClient_PutSendsBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/suds-checkin/2026-10-18", r.URL.Path)

		var got domain.SudsCheckin
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, 7, got.Score)
		writeJSON(w, http.StatusOK, got)
	})

	saved, err := client.UpdateSudsCheckin(context.Background(), "2026-10-18",
		domain.SudsCheckin{Date: "2026-10-18", Score: 7})

	require.NoError(t, err)
	assert.Equal(t, 7, saved.Score)
}

func TestClient_NoTokenFailsBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL}, StaticToken(""), NoopObserver{})
	_, err := client.Goals(context.Background())

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, int32(0), hits.Load())
}

func TestClient_UnauthenticatedOnboardingSkipsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(w, http.StatusOK, domain.AuthResponse{Token: "fresh"})
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL}, StaticToken(""), NoopObserver{})
	resp, err := client.Login(context.Background(), domain.LoginRequest{Email: "a@b.c", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "fresh", resp.Token)
}

func TestClient_Non2xxIsRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "score required"})
	})

	_, err := client.SudsList(context.Background())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnprocessableEntity, reqErr.StatusCode)
	assert.Equal(t, "Unprocessable Entity", reqErr.Status)
	assert.Equal(t, "score required", reqErr.Message)
	assert.True(t, IsStatus(err, http.StatusUnprocessableEntity))
}

func TestClient_RequestErrorFallsBackToMessageField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})

	_, err := client.Progress(context.Background())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "boom", reqErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1"}, StaticToken("t"), NoopObserver{})

	_, err := client.Profile(context.Background())

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "NETWORK", ErrorCode(err))
}

func TestClient_UniformTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeJSON(w, http.StatusOK, domain.MessageResponse{})
	}, func(o *Options) { o.Timeout = 30 * time.Millisecond })

	_, err := client.ForgotPassword(context.Background(), domain.ForgotPasswordRequest{Email: "a@b.c"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
	assert.Equal(t, "TIMEOUT", ErrorCode(err))
}

func TestClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Goals{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Goals(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "CANCELED", ErrorCode(err))
}

func TestClient_InvalidJSONIsDeserializationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name": `))
	})

	_, err := client.Profile(context.Background())

	var decErr *DeserializationError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "DECODE", ErrorCode(err))
}

func TestClient_ShapeValidationIsDeserializationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"date": "2026-10-18", "score": 42})
	})

	_, err := client.SudsCheckin(context.Background(), "2026-10-18")

	var decErr *DeserializationError
	require.ErrorAs(t, err, &decErr)
}

func TestClient_InvalidDateRejectedBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	_, err := client.DiaryEntry(context.Background(), "10/18/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = client.SudsCalendar(context.Background(), "2026-1")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)

	assert.Equal(t, int32(0), hits.Load())
}

func TestClient_PreTreatmentStateRoundTripKeepsUnknownFields(t *testing.T) {
	var stored []byte = []byte(`{"stepsCompleted":1,"extra":{"a":1}}`)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			stored = body
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(stored)
	})
	ctx := context.Background()

	state, err := client.PreTreatmentState(ctx)
	require.NoError(t, err)
	updated, err := state.WithCounter(domain.CounterDBTJourney, 2)
	require.NoError(t, err)
	_, err = client.UpdatePreTreatmentState(ctx, updated)
	require.NoError(t, err)

	assert.JSONEq(t, `{"stepsCompleted":1,"extra":{"a":1},"dbtOverviewPartsCompleted":{"dbtJourney":2}}`, string(stored))
}

func TestClient_ObserverReceivesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "missing"})
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}
	client := NewClient(Options{BaseURL: srv.URL}, StaticToken("t"), obs)

	_, err := client.Letter(context.Background())

	require.Error(t, err)
	assert.False(t, captured.Success)
	assert.Equal(t, ResourceLetter, captured.Resource)
	assert.Equal(t, http.StatusNotFound, captured.StatusCode)
	assert.Equal(t, "HTTP_404", captured.ErrorCode)
	assert.True(t, errors.Is(captured.Err, err))
}

func TestLogObserver_WritesErrorRecords(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf, slog.LevelError)

	obs.OnCallComplete(context.Background(), CallEvent{Resource: "goals", Method: "GET", Success: true})
	assert.Empty(t, buf.String(), "successful calls log below error level")

	obs.OnCallComplete(context.Background(), CallEvent{
		Resource: "goals", Method: "GET", StatusCode: 500, ErrorCode: "HTTP_500",
		Err: errors.New("boom"),
	})
	assert.Contains(t, buf.String(), "api_call")
	assert.Contains(t, buf.String(), "error_code=HTTP_500")
	assert.Contains(t, buf.String(), "resource=goals")
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) OnCallComplete(_ context.Context, e CallEvent) { o.fn(e) }
