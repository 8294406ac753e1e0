package domain

import (
	"fmt"
	"strings"
)

// Schema names the collections, document fields and message keys the triggers
// work with. Field lookups try each key in order, so a Spanish deployment
// still accepts documents written with English field names and vice versa.
type Schema struct {
	Locale                  string
	NotificationsCollection string
	UsersCollection         string
	TitleKeys               []string
	BodyKeys                []string
	ClassKeys               []string
	TopicPrefix             string
	NotificationIDKey       string
}

var (
	SpanishSchema = Schema{
		Locale:                  "es",
		NotificationsCollection: "notificaciones",
		UsersCollection:         "usuario",
		TitleKeys:               []string{"titulo", "title"},
		BodyKeys:                []string{"cuerpo", "body"},
		ClassKeys:               []string{"claseId", "classId"},
		TopicPrefix:             "clase_",
		NotificationIDKey:       "notificacionId",
	}

	EnglishSchema = Schema{
		Locale:                  "en",
		NotificationsCollection: "notifications",
		UsersCollection:         "users",
		TitleKeys:               []string{"title", "titulo"},
		BodyKeys:                []string{"body", "cuerpo"},
		ClassKeys:               []string{"classId", "claseId"},
		TopicPrefix:             "class_",
		NotificationIDKey:       "notificationId",
	}
)

// SchemaFor returns the schema registered for locale ("es" or "en").
func SchemaFor(locale string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", "es":
		return SpanishSchema, nil
	case "en":
		return EnglishSchema, nil
	default:
		return Schema{}, fmt.Errorf("unknown schema locale %q", locale)
	}
}

// WithTopicPrefix returns a copy of s using prefix for topic names.
// An empty prefix keeps the schema default.
func (s Schema) WithTopicPrefix(prefix string) Schema {
	if prefix != "" {
		s.TopicPrefix = prefix
	}
	return s
}

// Topic derives the push topic for a class reference.
func (s Schema) Topic(ref ClassRef) string {
	return s.TopicPrefix + ClassID(ref)
}
