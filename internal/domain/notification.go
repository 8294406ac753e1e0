package domain

// NotificationRecord is the created notification document as seen by the
// dispatcher. The notification id is not a field; it comes from the path.
type NotificationRecord struct {
	Title string   `validate:"required"`
	Body  string   `validate:"required"`
	Class ClassRef `validate:"-"`
}

// HasClass reports whether the record carries a usable class identifier.
func (n NotificationRecord) HasClass() bool {
	return present(n.Class)
}

// PushMessage is the topic-addressed message handed to the messaging service.
// It is never persisted.
type PushMessage struct {
	Title string
	Body  string
	Topic string
	Data  map[string]string
}

// ClickActionKey is the data key mobile clients read to route a tapped notification.
const ClickActionKey = "click_action"
