package firestore

import (
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
)

func str(s string) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_StringValue{StringValue: s}}
}

func integer(n int64) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_IntegerValue{IntegerValue: n}}
}

func ref(path string) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_ReferenceValue{ReferenceValue: path}}
}

func null() *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_NullValue{}}
}

func mapOf(fields map[string]*firestoredata.Value) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_MapValue{
		MapValue: &firestoredata.MapValue{Fields: fields},
	}}
}

func doc(name string, fields map[string]*firestoredata.Value) *firestoredata.Document {
	return &firestoredata.Document{Name: name, Fields: fields}
}
