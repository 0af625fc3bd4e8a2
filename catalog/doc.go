// Package catalog derives a flat API catalog from an OpenAPI document.
//
// Every path carrying a version segment ("v1", "v2", ...) becomes one
// [Descriptor]. Segments before the version form the routing prefix and
// supply the market; segments after it form the endpoint path and the API
// name:
//
//	/stock/hk/ss/v1/etf/list   -> etf_list_hk
//	/stock/f10/hk/v1/etf/list  -> f10_etf_list_hk
//	/option/us/v1/chain        -> chain_usOption
//
// Names listed in [Config.IgnoredNames] are dropped, and
// [Catalog.APIKeyList] starts with [Config.SeedNames].
//
// # Request bodies
//
// Request body fields come from the first [BodyResolver] that yields any:
// [InlineProperties], then [ComponentReference], then [ExampleInference].
// [Descriptor.BodySource] records which one it was. Responses are never
// catalogued.
//
// # Usage
//
//	cat, err := catalog.ExtractBytes(data, catalog.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	for _, api := range cat.API {
//		fmt.Println(api.Name, api.Method)
//	}
//
// Use [New] with [WithLogger] to see which paths were skipped and why.
package catalog
