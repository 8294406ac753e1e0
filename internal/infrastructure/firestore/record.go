package firestore

import (
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"

	"github.com/go-class-triggers/internal/domain"
)

// NotificationFrom reads a notification document using the schema's field
// names. Missing or non-string title and body come back empty; a missing or
// null class comes back nil. It never fails: the dispatcher decides what an
// incomplete record means.
func NotificationFrom(doc *firestoredata.Document, schema domain.Schema) domain.NotificationRecord {
	fields := doc.GetFields()
	return domain.NotificationRecord{
		Title: stringField(fields, schema.TitleKeys),
		Body:  stringField(fields, schema.BodyKeys),
		Class: ClassRefOf(lookup(fields, schema.ClassKeys)),
	}
}

// ClassRefOf resolves a stored class value into the ClassRef sum type.
// Document references and maps carrying an "id" are references; anything
// else is kept as a scalar.
func ClassRefOf(v *firestoredata.Value) domain.ClassRef {
	if v == nil {
		return nil
	}
	switch x := v.GetValueType().(type) {
	case nil, *firestoredata.Value_NullValue:
		return nil
	case *firestoredata.Value_ReferenceValue:
		return domain.Reference{ID: ReferenceID(x.ReferenceValue)}
	case *firestoredata.Value_MapValue:
		if id, ok := x.MapValue.GetFields()["id"]; ok {
			if ref, isRef := id.GetValueType().(*firestoredata.Value_ReferenceValue); isRef {
				return domain.Reference{ID: ReferenceID(ref.ReferenceValue)}
			}
			if raw := Plain(id); raw != nil {
				return domain.Reference{ID: domain.ClassID(domain.Scalar{Value: raw})}
			}
			return domain.Reference{}
		}
	}
	return domain.Scalar{Value: Plain(v)}
}

// Plain converts a Firestore value into an ordinary Go value:
// string, int64, float64, bool, time.Time, []byte, []any or map[string]any.
// Null and unknown shapes become nil.
func Plain(v *firestoredata.Value) any {
	switch x := v.GetValueType().(type) {
	case *firestoredata.Value_StringValue:
		return x.StringValue
	case *firestoredata.Value_IntegerValue:
		return x.IntegerValue
	case *firestoredata.Value_DoubleValue:
		return x.DoubleValue
	case *firestoredata.Value_BooleanValue:
		return x.BooleanValue
	case *firestoredata.Value_TimestampValue:
		return x.TimestampValue.AsTime()
	case *firestoredata.Value_BytesValue:
		return x.BytesValue
	case *firestoredata.Value_ReferenceValue:
		return x.ReferenceValue
	case *firestoredata.Value_GeoPointValue:
		return map[string]any{
			"latitude":  x.GeoPointValue.GetLatitude(),
			"longitude": x.GeoPointValue.GetLongitude(),
		}
	case *firestoredata.Value_ArrayValue:
		values := x.ArrayValue.GetValues()
		out := make([]any, 0, len(values))
		for _, item := range values {
			out = append(out, Plain(item))
		}
		return out
	case *firestoredata.Value_MapValue:
		fields := x.MapValue.GetFields()
		out := make(map[string]any, len(fields))
		for k, item := range fields {
			out[k] = Plain(item)
		}
		return out
	default:
		return nil
	}
}

func lookup(fields map[string]*firestoredata.Value, keys []string) *firestoredata.Value {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v.GetValueType() != nil {
			if _, isNull := v.GetValueType().(*firestoredata.Value_NullValue); !isNull {
				return v
			}
		}
	}
	return nil
}

func stringField(fields map[string]*firestoredata.Value, keys []string) string {
	return lookup(fields, keys).GetStringValue()
}
