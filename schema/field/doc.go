// Package field maps declared database column types to protocol buffer
// field types.
//
// Database type names are classified into a small, closed set of known
// types. Anything outside that set is kept as an opaque passthrough and
// emitted verbatim:
//
//	field.ProtoType("text")       // string
//	field.ProtoType("varchar")    // string
//	field.ProtoType("timestamp")  // google.protobuf.Timestamp
//	field.ProtoType("int")        // int32
//	field.ProtoType("bool")       // bool (passthrough)
//
// # Modifiers
//
// Column modifiers are applied after the lookup. Array columns become
// repeated fields, and nullable columns become optional fields. The two
// modifiers never stack; an array column is always rendered as repeated:
//
//	field.ProtoFieldType("text", true, false)   // repeated string
//	field.ProtoFieldType("text", false, false)  // optional string
//	field.ProtoFieldType("text", false, true)   // string
package field
