package firestore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CloudEvent types emitted by Firestore through Eventarc.
const (
	EventCreated = "google.cloud.firestore.document.v1.created"
	EventDeleted = "google.cloud.firestore.document.v1.deleted"
)

// ErrNoData is returned for events that carry no payload at all.
var ErrNoData = errors.New("firestore event has no data")

// DecodeEventData parses a DocumentEventData payload. Eventarc sends
// application/protobuf by default and application/json when the trigger asks
// for it.
func DecodeEventData(contentType string, data []byte) (*firestoredata.DocumentEventData, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}
	var out firestoredata.DocumentEventData
	switch mediaType(contentType) {
	case "application/json":
		opts := protojson.UnmarshalOptions{DiscardUnknown: true}
		if err := opts.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode firestore json: %w", err)
		}
	case "", "application/protobuf", "application/x-protobuf":
		opts := proto.UnmarshalOptions{DiscardUnknown: true}
		if err := opts.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode firestore protobuf: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported firestore data content type %q", contentType)
	}
	return &out, nil
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
