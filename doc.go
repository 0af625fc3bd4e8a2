// Package oacatalog extracts a normalized catalog of callable API endpoints
// from machine-generated OpenAPI documents.
//
// The catalog is the input to downstream client and event-name generation.
// Each endpoint is keyed by a name derived deterministically from its URL,
// and carries its query parameters and a flattened request body resolved from
// the document's component schemas.
//
// # Overview
//
// The module is split into a small number of packages:
//
//   - apidoc: decode the subset of an OpenAPI document the catalog needs,
//     preserving the document's key order
//   - catalog: the extractor that turns a decoded document into a catalog
//   - oaserrors: structured error types for errors.Is and errors.As
//
// # Quick Start
//
//	import (
//		"github.com/erraggy/oacatalog/apidoc"
//		"github.com/erraggy/oacatalog/catalog"
//	)
//
//	result, err := apidoc.Load(apidoc.WithFilePath("openapi.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	cat := catalog.Extract(result.Document, catalog.DefaultConfig())
//	for _, api := range cat.API {
//		fmt.Println(api.Name, api.Method, api.Path)
//	}
//
// # Naming
//
// Paths are split around their version segment (v1, v2, ...). Segments after
// the version form the name, joined with underscores, and a market suffix is
// appended when a market token (hk, us, hs, usOption) appears before the
// version:
//
//	/stock/hk/ss/v1/etf/list   ->  etf_list_hk
//	/stock/f10/hk/v1/etf/list  ->  f10_etf_list_hk
//	/option/us/v1/chain        ->  chain_usOption
//
// Paths without a version segment, and names on the configured ignore list,
// are left out of the catalog.
//
// # Known Limitations
//
// Response schemas are not resolved. Every catalog entry carries an empty
// response mapping regardless of what the document declares.
package oacatalog
