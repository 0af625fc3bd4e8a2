package catalog

import (
	"slices"
	"strings"

	"github.com/erraggy/oacatalog/apidoc"
	"github.com/erraggy/oacatalog/internal/maputil"
)

// Extractor turns documents into catalogs under a fixed Config.
//
// An Extractor is immutable after New and safe for concurrent use.
type Extractor struct {
	seeds        []string
	ignored      map[string]struct{}
	markets      map[string]struct{}
	optionMarker string
	optionSuffix string
	f10Marker    string
	f10Prefix    string

	resolvers []BodyResolver
	normalize bool
	logger    apidoc.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug notes about skipped paths and
// unresolved references. Defaults to NopLogger.
func WithLogger(l apidoc.Logger) Option {
	return func(x *Extractor) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithBodyResolvers replaces the request body strategies. With no resolvers,
// every descriptor gets an empty request body.
func WithBodyResolvers(resolvers ...BodyResolver) Option {
	return func(x *Extractor) {
		x.resolvers = slices.Clone(resolvers)
		if x.resolvers == nil {
			x.resolvers = []BodyResolver{}
		}
	}
}

// WithUnicodeNormalization makes the default reference strategy retry failed
// schema lookups under Unicode normalization form C. It has no effect when
// WithBodyResolvers supplies the strategies.
func WithUnicodeNormalization(enabled bool) Option {
	return func(x *Extractor) {
		x.normalize = enabled
	}
}

// New returns an Extractor for cfg. Zero-valued markets and markers take
// their DefaultConfig values; New fails with *oaserrors.ConfigError when the
// result does not validate.
func New(cfg Config, opts ...Option) (*Extractor, error) {
	if err := cfg.withDefaults().Validate(); err != nil {
		return nil, err
	}
	return newExtractor(cfg, opts...), nil
}

func newExtractor(cfg Config, opts ...Option) *Extractor {
	cfg = cfg.withDefaults()
	x := &Extractor{
		seeds:        slices.Clone(cfg.SeedNames),
		ignored:      make(map[string]struct{}, len(cfg.IgnoredNames)),
		markets:      make(map[string]struct{}, len(cfg.Markets)),
		optionMarker: cfg.OptionMarker,
		optionSuffix: cfg.OptionSuffix,
		f10Marker:    cfg.F10Marker,
		f10Prefix:    cfg.F10Prefix,
		logger:       apidoc.NopLogger{},
	}
	for _, name := range cfg.IgnoredNames {
		x.ignored[name] = struct{}{}
	}
	for _, m := range cfg.Markets {
		x.markets[m] = struct{}{}
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.resolvers == nil {
		x.resolvers = DefaultBodyResolvers()
		for i, r := range x.resolvers {
			if ref, ok := r.(ComponentReference); ok {
				ref.NormalizeUnicode = x.normalize
				x.resolvers[i] = ref
			}
		}
	}
	return x
}

// Extract builds the catalog for doc using cfg. It performs no I/O and does
// not modify doc.
func Extract(doc *apidoc.Document, cfg Config) *Catalog {
	return newExtractor(cfg).Extract(doc)
}

// ExtractBytes decodes a JSON or YAML document and extracts its catalog. Its
// errors are the decoding errors of apidoc.Decode.
func ExtractBytes(data []byte, cfg Config, opts ...Option) (*Catalog, error) {
	doc, err := apidoc.Decode(data)
	if err != nil {
		return nil, err
	}
	return newExtractor(cfg, opts...).Extract(doc), nil
}

// Extract builds the catalog for doc. A nil doc yields a catalog holding only
// the seed names.
func (x *Extractor) Extract(doc *apidoc.Document) *Catalog {
	cat := &Catalog{
		API:        []*Descriptor{},
		APIKeyList: slices.Clone(x.seeds),
	}
	if cat.APIKeyList == nil {
		cat.APIKeyList = []string{}
	}
	if doc == nil {
		return cat
	}
	cat.APIVersion = doc.APIVersion

	for path, methods := range doc.Paths.All() {
		d := x.describe(doc, path, methods)
		if d == nil {
			continue
		}
		cat.API = append(cat.API, d)
		cat.APIKeyList = append(cat.APIKeyList, d.Name)
	}
	return cat
}

// describe builds the descriptor for one path, or returns nil when the path
// has no version segment or its name is ignored.
func (x *Extractor) describe(doc *apidoc.Document, path string, methods *apidoc.MethodMap) *Descriptor {
	r, ok := splitRoute(path)
	if !ok {
		x.logger.Debug("skipping path", "path", path, "reason", "no version segment")
		return nil
	}
	market := x.market(r)
	prefix := r.prefix()
	name := x.apiName(r, market, prefix)
	if _, ok := x.ignored[name]; ok {
		x.logger.Debug("skipping path", "path", path, "reason", "ignored name", "apiName", name)
		return nil
	}

	method, op := firstOperation(methods)
	if methods.Len() > 1 {
		x.logger.Debug("path declares several methods, using the first", "path", path, "method", method)
	}

	params := maputil.NewOrdered[Parameter](len(op.Parameters))
	for _, p := range op.Parameters {
		params.Set(p.Name, Parameter{Description: p.Description, Required: p.Required})
	}
	body, source := x.requestBody(doc, op.RequestBody)

	return &Descriptor{
		Name:        name,
		Summary:     op.Summary,
		Description: op.Description,
		Market:      market,
		Method:      method,
		Prefix:      prefix,
		Path:        strings.Join(r.tail(), "/"),
		Parameters:  params,
		RequestBody: body,
		Response:    maputil.NewOrdered[Field](0),
		BodySource:  source,
	}
}

func (x *Extractor) requestBody(doc *apidoc.Document, media *apidoc.MediaType) (*Fields, BodySource) {
	if media != nil {
		req := BodyRequest{Document: doc, Media: media, Logger: x.logger}
		for _, r := range x.resolvers {
			if fields := r.Resolve(req); fields.Len() > 0 {
				return fields, r.Source()
			}
		}
	}
	return maputil.NewOrdered[Field](0), BodySourceNone
}

// firstOperation returns the first method declared for a path. An empty or
// nil method map yields an empty method and operation.
func firstOperation(methods *apidoc.MethodMap) (string, *apidoc.Operation) {
	for method, op := range methods.All() {
		if op == nil {
			op = &apidoc.Operation{}
		}
		return method, op
	}
	return "", &apidoc.Operation{}
}
