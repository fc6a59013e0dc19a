package gen

import (
	"gopkg.in/yaml.v3"
)

var (
	// FeatureSQL generates the <table>_crud.gen.sql query files.
	FeatureSQL = Feature{
		Name:        "sql",
		Default:     true,
		Description: "SQL generates the create, update, get, list, count and delete queries of every table",
	}

	// FeatureProto generates the combined proto.gen.proto message file.
	FeatureProto = Feature{
		Name:        "proto",
		Default:     true,
		Description: "Proto generates one protobuf message per table",
	}

	// FeatureConvert generates the proto.cnv.go conversion functions.
	FeatureConvert = Feature{
		Name:        "convert",
		Default:     true,
		Description: "Convert generates Go functions converting query rows to protobuf messages",
	}

	// FeatureService generates the <table>_crud.proto service files.
	FeatureService = Feature{
		Name:        "service",
		Default:     true,
		Description: "Service generates a CRUD gRPC service definition per table",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureSQL,
		FeatureProto,
		FeatureConvert,
		FeatureService,
	}
)

// A Feature of the crudgen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// LookupFeature returns the feature with the given name.
func LookupFeature(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// UnmarshalYAML decodes a feature from its name.
func (f *Feature) UnmarshalYAML(n *yaml.Node) error {
	var name string
	if err := n.Decode(&name); err != nil {
		return err
	}
	feat, ok := LookupFeature(name)
	if !ok {
		return NewConfigError("Features", name, "unknown feature")
	}
	*f = feat
	return nil
}

// MarshalYAML encodes a feature as its name.
func (f Feature) MarshalYAML() (any, error) {
	return f.Name, nil
}
