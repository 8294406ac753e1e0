package domain

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ClassRef is the stored class pointer of a notification. It is either a
// Reference to a class document or a Scalar holding whatever raw value the
// writer stored.
type ClassRef interface {
	classRef()
}

// Reference is a foreign-key style pointer exposing the target document id.
type Reference struct {
	ID string
}

// Scalar is any class value that is not reference-like.
type Scalar struct {
	Value any
}

func (Reference) classRef() {}
func (Scalar) classRef()    {}

// ClassID resolves the scalar identifier of ref. It never fails: every shape
// has a defined string form.
func ClassID(ref ClassRef) string {
	switch r := ref.(type) {
	case Reference:
		return r.ID
	case Scalar:
		return formatScalar(r.Value)
	default:
		return formatScalar(nil)
	}
}

// present reports whether ref carries a usable class identifier. Zero-like
// scalars (null, "", 0, NaN, false) are not identifiers.
func present(ref ClassRef) bool {
	switch r := ref.(type) {
	case Reference:
		return r.ID != ""
	case Scalar:
		switch x := r.Value.(type) {
		case nil:
			return false
		case string:
			return x != ""
		case int64:
			return x != 0
		case int:
			return x != 0
		case float64:
			return x != 0 && !math.IsNaN(x)
		case bool:
			return x
		default:
			return true
		}
	default:
		return false
	}
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []byte:
		return base64.RawURLEncoding.EncodeToString(x)
	default:
		return fmt.Sprint(x)
	}
}
