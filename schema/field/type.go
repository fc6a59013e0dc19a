package field

import "strings"

// A Type is a classified database column type.
type Type uint8

// List of known database types.
const (
	// TypeOther is any type outside the known set. It maps to itself.
	TypeOther Type = iota
	TypeText
	TypeVarchar
	TypeTimestamp
	TypeInt
	endTypes
)

// ProtoTimestamp is the well-known protobuf timestamp message.
const ProtoTimestamp = "google.protobuf.Timestamp"

var (
	typeNames = [...]string{
		TypeOther:     "other",
		TypeText:      "text",
		TypeVarchar:   "varchar",
		TypeTimestamp: "timestamp",
		TypeInt:       "int",
	}
	protoTypes = [...]string{
		TypeText:      "string",
		TypeVarchar:   "string",
		TypeTimestamp: ProtoTimestamp,
		TypeInt:       "int32",
	}
	// aliases holds the spellings a catalog may use for the known types.
	aliases = map[string]Type{
		"text":                        TypeText,
		"varchar":                     TypeVarchar,
		"character varying":           TypeVarchar,
		"timestamp":                   TypeTimestamp,
		"timestamp without time zone": TypeTimestamp,
		"int":                         TypeInt,
		"integer":                     TypeInt,
		"int4":                        TypeInt,
	}
)

// Types returns all known types, excluding TypeOther.
func Types() []Type {
	ts := make([]Type, 0, endTypes-1)
	for t := TypeOther + 1; t < endTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}

// String returns the canonical database name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeOther]
}

// Valid reports if the given type is one of the known types.
func (t Type) Valid() bool {
	return t > TypeOther && t < endTypes
}

// Proto returns the protobuf scalar or message name of a known type.
// It returns an empty string for TypeOther.
func (t Type) Proto() string {
	if !t.Valid() {
		return ""
	}
	return protoTypes[t]
}

// ParseType classifies a declared database type name. The "pg_catalog."
// prefix and size specifiers such as "(255)" are ignored, and matching is
// case-insensitive.
func ParseType(name string) Type {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "pg_catalog.")
	if i := strings.IndexByte(n, '('); i != -1 {
		n = strings.TrimSpace(n[:i])
	}
	if t, ok := aliases[n]; ok {
		return t
	}
	return TypeOther
}

// ProtoType maps a declared database type name to its protobuf type.
// Unknown types are returned unchanged.
func ProtoType(dbType string) string {
	if t := ParseType(dbType); t.Valid() {
		return t.Proto()
	}
	return dbType
}

// ProtoFieldType maps a column to its protobuf field type, including the
// repeated/optional label. Array columns take precedence over nullability.
func ProtoFieldType(dbType string, isArray, notNull bool) string {
	typ := ProtoType(dbType)
	switch {
	case isArray:
		return "repeated " + typ
	case !notNull:
		return "optional " + typ
	default:
		return typ
	}
}

// IsTimestamp reports if the declared type is a timestamp.
func IsTimestamp(dbType string) bool {
	return ParseType(dbType) == TypeTimestamp
}
