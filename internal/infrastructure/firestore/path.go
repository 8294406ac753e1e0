package firestore

import (
	"fmt"
	"strings"
)

// DocumentPath is a document location split into its parent collection path
// and the document id.
type DocumentPath struct {
	Collection string
	ID         string
}

func (p DocumentPath) String() string {
	return p.Collection + "/" + p.ID
}

// ParsePath accepts the forms a document location shows up in:
// "users/U1", "documents/users/U1" (CloudEvent subject) and the full resource
// name "projects/p/databases/(default)/documents/users/U1".
func ParsePath(raw string) (DocumentPath, error) {
	p := strings.Trim(raw, "/")
	if _, rest, ok := strings.Cut(p, "/documents/"); ok {
		p = rest
	} else {
		p = strings.TrimPrefix(p, "documents/")
	}
	segments := strings.Split(p, "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return DocumentPath{}, fmt.Errorf("not a document path: %q", raw)
	}
	for _, s := range segments {
		if s == "" {
			return DocumentPath{}, fmt.Errorf("not a document path: %q", raw)
		}
	}
	last := len(segments) - 1
	return DocumentPath{
		Collection: strings.Join(segments[:last], "/"),
		ID:         segments[last],
	}, nil
}

// ReferenceID returns the id of the document a reference value points at.
func ReferenceID(ref string) string {
	ref = strings.TrimRight(ref, "/")
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
