// Package apidoc decodes the parts of an OpenAPI document that the endpoint
// catalog is built from.
//
// Documents are produced by backend frameworks and read as JSON (YAML is
// accepted too). Decoding goes through a yaml.Node tree rather than Go maps so
// the order of paths, methods, properties and example fields is kept: that
// order ends up in the generated catalog.
//
// # Quick Start
//
//	result, err := apidoc.Load(apidoc.WithFilePath("openapi.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for path, methods := range result.Document.Paths.All() {
//		fmt.Println(path, methods.Keys())
//	}
//
// Or decode bytes already in memory:
//
//	doc, err := apidoc.Decode(data)
//
// # What Is Read
//
// Only info.version, paths (summary, description, parameters and the
// application/json request body of each operation) and components.schemas
// (required and properties) are decoded. Response schemas and any other
// field are skipped.
//
// # Errors
//
// A document that is not well-formed yields an [oaserrors.ParseError]. A
// document missing info.version or paths yields an
// [oaserrors.ValidationError]. Optional fields with an unexpected shape are
// treated as absent rather than rejected.
package apidoc
