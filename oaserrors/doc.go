// Package oaserrors provides structured error types for oacatalog.
//
// Import path: github.com/erraggy/oacatalog/oaserrors
//
// Only fatal conditions are reported as errors: a source document that is not
// well-formed, a document missing the fields the catalog is built from, an
// input over the configured size limit, or bad configuration. Everything the
// extractor can recover from (a path without a version segment, a dangling
// $ref, an empty example) is handled by policy and never surfaces here.
//
// # Error Types
//
//   - [ParseError]: the input is not well-formed JSON/YAML, or its root is not an object
//   - [ValidationError]: a required top-level field (info.version, paths) is missing or malformed
//   - [ResourceLimitError]: the input exceeds a configured limit
//   - [ConfigError]: invalid options or configuration file
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	doc, err := apidoc.Decode(data)
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // not JSON at all
//	}
//
//	var vErr *oaserrors.ValidationError
//	if errors.As(err, &vErr) {
//	    fmt.Printf("document is missing %s\n", vErr.Field)
//	}
package oaserrors
