package catalog

import (
	"regexp"
	"strings"
)

// versionSegment matches the path segment that separates the routing prefix
// from the endpoint's own segments, e.g. "v1" or "v12".
var versionSegment = regexp.MustCompile(`^v\d+$`)

// route is a URL path split on "/" around its version segment.
type route struct {
	segments []string
	version  int
}

// splitRoute segments path and locates its first version segment. It reports
// false when there is none.
func splitRoute(path string) (route, bool) {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if versionSegment.MatchString(seg) {
			return route{segments: segments, version: i}, true
		}
	}
	return route{}, false
}

// prefix joins the segments between the leading one and the version segment.
// For "/stock/f10/hk/v1/etf/list" that is "stock/f10/hk".
func (r route) prefix() string {
	if r.version < 1 {
		return ""
	}
	return strings.Join(r.segments[1:r.version], "/")
}

// tail returns the segments after the version segment.
func (r route) tail() []string {
	return r.segments[r.version+1:]
}

// market returns the first market token before the version segment, with the
// option suffix applied when the token follows the option marker.
func (x *Extractor) market(r route) string {
	for i, seg := range r.segments[:r.version] {
		if _, ok := x.markets[seg]; !ok {
			continue
		}
		if i > 0 && r.segments[i-1] == x.optionMarker {
			return seg + x.optionSuffix
		}
		return seg
	}
	return ""
}

// apiName builds the catalog name: tail segments joined with "_", then the
// market, with the f10 prefix for paths under the f10 marker.
func (x *Extractor) apiName(r route, market, prefix string) string {
	var sb strings.Builder
	if strings.Contains(prefix, x.f10Marker) {
		sb.WriteString(x.f10Prefix)
	}
	sb.WriteString(strings.Join(r.tail(), "_"))
	if market != "" {
		sb.WriteByte('_')
		sb.WriteString(market)
	}
	return sb.String()
}
