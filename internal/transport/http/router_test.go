package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/go-class-triggers/internal/application/dispatch"
	"github.com/go-class-triggers/internal/application/reaper"
	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/infrastructure/firestore"
	"github.com/go-class-triggers/internal/pkg/logger"
	"github.com/go-class-triggers/internal/pkg/metrics"
)

type mockMessenger struct{ mock.Mock }

func (m *mockMessenger) Send(ctx context.Context, msg domain.PushMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

const docPrefix = "projects/demo/databases/(default)/documents/"

type testServer struct {
	router    http.Handler
	messenger *mockMessenger
	accounts  *mockAccounts
	logs      *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		messenger: &mockMessenger{},
		accounts:  &mockAccounts{},
		logs:      &bytes.Buffer{},
	}
	schema := domain.SpanishSchema
	ts.router = NewRouter(&Deps{
		Dispatcher: dispatch.NewService(ts.messenger, schema, "FLUTTER_NOTIFICATION_CLICK"),
		Reaper:     reaper.NewService(ts.accounts),
		Schema:     schema,
		Logger:     logger.NewWithWriter(ts.logs, "debug"),
		Metrics:    metrics.New(),
		Started:    time.Now().Add(-time.Minute),
	})
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) logLines(t *testing.T) []map[string]any {
	t.Helper()
	var lines []map[string]any
	dec := json.NewDecoder(bytes.NewReader(ts.logs.Bytes()))
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

func countSeverity(lines []map[string]any, sev string) int {
	n := 0
	for _, l := range lines {
		if l["severity"] == sev {
			n++
		}
	}
	return n
}

// structuredEvent builds a structured-mode CloudEvent carrying JSON-encoded
// document data.
func structuredEvent(t *testing.T, target, eventType, subject string, data *firestoredata.DocumentEventData) *http.Request {
	t.Helper()
	raw, err := protojson.Marshal(data)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]any{
		"specversion":     "1.0",
		"id":              "evt-" + subject,
		"source":          "//firestore.googleapis.com/projects/demo/databases/(default)",
		"type":            eventType,
		"subject":         subject,
		"datacontenttype": "application/json",
		"data":            json.RawMessage(raw),
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/cloudevents+json")
	return req
}

func str(s string) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_StringValue{StringValue: s}}
}

func TestRouter_NotificationWithClassReference(t *testing.T) {
	ts := newTestServer(t)
	want := domain.PushMessage{
		Title: "Quiz",
		Body:  "Starts now",
		Topic: "clase_abc123",
		Data: map[string]string{
			"click_action":   "FLUTTER_NOTIFICATION_CLICK",
			"notificacionId": "N1",
		},
	}
	ts.messenger.On("Send", mock.Anything, want).Return("projects/demo/messages/1", nil).Once()

	rec := ts.do(structuredEvent(t, "/events/notifications", firestore.EventCreated, "documents/notificaciones/N1",
		&firestoredata.DocumentEventData{Value: &firestoredata.Document{
			Name: docPrefix + "notificaciones/N1",
			Fields: map[string]*firestoredata.Value{
				"titulo": str("Quiz"),
				"cuerpo": str("Starts now"),
				"claseId": {ValueType: &firestoredata.Value_ReferenceValue{
					ReferenceValue: docPrefix + "clases/abc123",
				}},
			},
		}}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	ts.messenger.AssertExpectations(t)
	ts.messenger.AssertNumberOfCalls(t, "Send", 1)
}

func TestRouter_NotificationWithoutClassSendsNothing(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(structuredEvent(t, "/events/notifications", firestore.EventCreated, "documents/notificaciones/N2",
		&firestoredata.DocumentEventData{Value: &firestoredata.Document{
			Name: docPrefix + "notificaciones/N2",
			Fields: map[string]*firestoredata.Value{
				"titulo": str("Quiz"),
				"cuerpo": str("Starts now"),
			},
		}}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	ts.messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Zero(t, countSeverity(ts.logLines(t), "ERROR"))
}

func TestRouter_UserAlreadyGoneIsInfo(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.On("Delete", mock.Anything, "U42").
		Return(fmt.Errorf("delete auth user: %w", domain.ErrNotFound)).Once()

	rec := ts.do(structuredEvent(t, "/events/users", firestore.EventDeleted, "documents/usuario/U42",
		&firestoredata.DocumentEventData{OldValue: &firestoredata.Document{
			Name: docPrefix + "usuario/U42",
		}}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	ts.accounts.AssertExpectations(t)
	lines := ts.logLines(t)
	assert.Zero(t, countSeverity(lines, "ERROR"))
	assert.Equal(t, 1, countSeverity(lines, "INFO"))
}

func TestRouter_UserDeleteFailureIsError(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.On("Delete", mock.Anything, "U7").
		Return(fmt.Errorf("delete auth user: %w", domain.ErrUnavailable)).Once()

	rec := ts.do(structuredEvent(t, "/events/users", firestore.EventDeleted, "documents/usuario/U7",
		&firestoredata.DocumentEventData{OldValue: &firestoredata.Document{Name: docPrefix + "usuario/U7"}}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, countSeverity(ts.logLines(t), "ERROR"))
}

func TestRouter_Healthz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Message       string `json:"message"`
		UptimeSeconds int    `json:"uptime_seconds"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Message)
	assert.GreaterOrEqual(t, body.UptimeSeconds, 60)
}

func TestRouter_MetricsExposesOutcomes(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.On("Delete", mock.Anything, "U1").Return(nil).Once()
	ts.do(structuredEvent(t, "/events/users", firestore.EventDeleted, "documents/usuario/U1",
		&firestoredata.DocumentEventData{OldValue: &firestoredata.Document{Name: docPrefix + "usuario/U1"}}))

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	out, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(out), `class_triggers_outcomes_total{handler="reap",kind="none",status="succeeded"} 1`)
	assert.Contains(t, string(out), `class_triggers_http_requests_total{method="POST",path="/events/users",status="204"} 1`)
}

func TestRouter_RejectsNonCloudEvent(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/events/notifications", bytes.NewReader([]byte(`{"hello":"world"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := ts.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
