package lazyjson

// Config holds the defaults applied by the package-level ParseValue and
// DecodeValue convenience functions (§6). Grounded on the teacher's ParserOption/
// WithCopyStrings pattern in the original options.go, generalized from a
// single boolean to the handful of knobs this reader actually needs.
type Config struct {
	useCache    bool
	associative bool
}

// Option configures a Config, following the teacher's functional-options
// shape (ParserOption).
type Option func(*Config)

func defaultConfig() Config {
	return Config{useCache: true, associative: true}
}

// WithCache controls whether Load (and the container handles it produces)
// memoise child offsets for accelerated random access (§3, §4.7, §4.8).
// Default: true.
func WithCache(b bool) Option {
	return func(c *Config) { c.useCache = b }
}

// WithAssociativeObjects controls whether DecodeValue's decoder façade
// (§4.9) renders Objects as map[string]interface{} (true) or as an ordered
// []KeyValue record preserving duplicate keys and source order (false).
// Default: true.
func WithAssociativeObjects(b bool) Option {
	return func(c *Config) { c.associative = b }
}

// ParseValue loads a value from src and fully recognises it, per §6's
// load/parse pair. It is a convenience over Load followed by Parse so
// callers who only need cursor discipline, not materialisation, don't have
// to spell out both calls.
func ParseValue(src Source, opts ...Option) (*Handle, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	h, err := Load(src, cfg.useCache)
	if err != nil {
		return nil, err
	}
	if err := h.Parse(); err != nil {
		return nil, err
	}
	return h, nil
}

// DecodeValue loads a value from src and eagerly decodes it into plain Go
// values via the decoder façade (§6 decode(), §4.9).
func DecodeValue(src Source, opts ...Option) (interface{}, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	h, err := Load(src, cfg.useCache)
	if err != nil {
		return nil, err
	}
	return h.Decode(cfg.associative)
}
