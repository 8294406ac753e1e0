package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/go-class-triggers/internal/domain"
	"github.com/go-class-triggers/internal/pkg/logger"
)

// --- mocks ---

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Dispatch(ctx context.Context, notificationID string, rec domain.NotificationRecord) domain.Outcome {
	return m.Called(ctx, notificationID, rec).Get(0).(domain.Outcome)
}

type mockReaper struct{ mock.Mock }

func (m *mockReaper) Reap(ctx context.Context, userID string) domain.Outcome {
	return m.Called(ctx, userID).Get(0).(domain.Outcome)
}

// --- helpers ---

const docPrefix = "projects/demo/databases/(default)/documents/"

func str(s string) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_StringValue{StringValue: s}}
}

func ref(path string) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_ReferenceValue{ReferenceValue: path}}
}

type ceOpts struct {
	eventType string
	document  string // ce-document extension; empty to omit
	subject   string
	data      *firestoredata.DocumentEventData
	raw       []byte // sent as-is when data is nil
}

// ceRequest builds a binary-mode CloudEvent delivery the way Eventarc sends it.
func ceRequest(t *testing.T, target string, o ceOpts) *http.Request {
	t.Helper()
	body := o.raw
	if o.data != nil {
		raw, err := proto.Marshal(o.data)
		require.NoError(t, err)
		body = raw
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Ce-Id", "evt-1")
	req.Header.Set("Ce-Specversion", "1.0")
	req.Header.Set("Ce-Source", "//firestore.googleapis.com/projects/demo/databases/(default)")
	req.Header.Set("Ce-Type", o.eventType)
	if o.subject != "" {
		req.Header.Set("Ce-Subject", o.subject)
	}
	if o.document != "" {
		req.Header.Set("Ce-Document", o.document)
	}
	req.Header.Set("Content-Type", "application/protobuf")
	return req
}

func created(name string, fields map[string]*firestoredata.Value) *firestoredata.DocumentEventData {
	return &firestoredata.DocumentEventData{Value: &firestoredata.Document{Name: name, Fields: fields}}
}

func deleted(name string) *firestoredata.DocumentEventData {
	return &firestoredata.DocumentEventData{OldValue: &firestoredata.Document{
		Name:   name,
		Fields: map[string]*firestoredata.Value{"email": str("u@example.com")},
	}}
}

type logLines []map[string]any

func (l logLines) withSeverity(sev string) logLines {
	var out logLines
	for _, line := range l {
		if line["severity"] == sev {
			out = append(out, line)
		}
	}
	return out
}

// testLogger returns a debug-level JSON logger and a function that parses
// everything written so far.
func testLogger(t *testing.T) (*slog.Logger, func() logLines) {
	t.Helper()
	var buf bytes.Buffer
	return logger.NewWithWriter(&buf, "debug"), func() logLines {
		var lines logLines
		dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
		for dec.More() {
			var line map[string]any
			require.NoError(t, dec.Decode(&line))
			lines = append(lines, line)
		}
		return lines
	}
}
