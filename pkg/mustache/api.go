// Package mustache implements a render engine for the mustache
// template language: {{tag}} interpolation, sections, inverted
// sections, partials with indentation fidelity, custom delimiters and
// lambdas whose output is re-compiled template source.
//
// Basic Usage:
//
//	tmpl, err := mustache.CompileString("Hello, {{name}}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := tmpl.RenderString(map[string]interface{}{
//	    "name": "Ferris",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // Hello, Ferris
//
// Template Syntax:
//
// Variables: {{name}}, {{customer.address}}, {{{unescaped}}}
//
// Sections: {{#items}}...{{/items}}, inverted {{^items}}...{{/items}}
//
// Partials: {{>header}} (indentation at the call site is applied to
// every line the partial emits)
//
// Delimiters: {{=<% %>=}} switches to <% %> from there on
//
// With the extended JSON configuration enabled, {{@}} emits the
// current iteration key or index, {{$path}} and {{%path}} emit a value
// as compact or pretty JSON, and {{#-top-}}...{{/-top-}} iterates the
// whole context stack.
package mustache

// Engine provides the main API for compiling templates.
// Use New() to create a new engine instance.
type Engine struct {
	config *Config
	cache  *TemplateCache
}

// New creates a new template engine with the global configuration.
func New() *Engine {
	return &Engine{
		config: GetGlobalConfig(),
		cache:  defaultCache,
	}
}

// NewWithConfig creates a new template engine with custom configuration.
func NewWithConfig(config *Config) *Engine {
	return &Engine{
		config: config,
		cache: NewTemplateCacheWithConfig(CacheConfig{
			MaxSize: config.CacheMaxSize,
			TTL:     config.CacheTTL,
		}),
	}
}

// CompileString compiles template source with the default delimiters.
func (e *Engine) CompileString(source string) (*Template, error) {
	return e.CompileStringWithPartials(source, nil)
}

// CompileStringWithPartials compiles template source together with a
// set of named partial sources. Partials may reference each other and
// the main template's lambdas may reference them too.
func (e *Engine) CompileStringWithPartials(source string, partials map[string]string) (*Template, error) {
	compiled := make(map[string][]Token, len(partials))
	for name, partialSource := range partials {
		tokens, err := compile(partialSource, DefaultOTag, DefaultCTag, e.config.ExtendedJSON)
		if err != nil {
			return nil, err
		}
		compiled[name] = tokens
	}

	tokens, err := compile(source, DefaultOTag, DefaultCTag, e.config.ExtendedJSON)
	if err != nil {
		return nil, err
	}

	return &Template{
		tokens:         tokens,
		partials:       compiled,
		otag:           DefaultOTag,
		ctag:           DefaultCTag,
		extended:       e.config.ExtendedJSON,
		maxLambdaDepth: e.config.MaxLambdaDepth,
	}, nil
}

// CompileCached compiles template source, reusing a previously
// compiled template stored under key if the engine's cache holds one.
func (e *Engine) CompileCached(key, source string) (*Template, error) {
	if e.cache != nil {
		if tmpl, ok := e.cache.Get(key); ok {
			return tmpl, nil
		}
	}

	tmpl, err := e.CompileString(source)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(key, tmpl)
	}
	return tmpl, nil
}

// RenderString compiles source and renders it with data in one step.
func (e *Engine) RenderString(source string, data interface{}) (string, error) {
	tmpl, err := e.CompileString(source)
	if err != nil {
		return "", err
	}
	return tmpl.RenderString(data)
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// ClearCache removes all templates from the engine's cache.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithExtendedJSON returns an option that toggles the structured-data
// extension.
func WithExtendedJSON(enabled bool) Option {
	return func(e *Engine) {
		e.config.ExtendedJSON = enabled
	}
}

// WithCache returns an option that sets the cache size (0 disables caching).
func WithCache(maxSize int) Option {
	return func(e *Engine) {
		e.config.CacheMaxSize = maxSize
	}
}

// NewWithOptions creates a new engine with the specified options.
func NewWithOptions(opts ...Option) *Engine {
	engine := New()
	configCopy := *engine.config
	engine.config = &configCopy
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = New()

// Module-level convenience functions that use the default engine.

// CompileString compiles template source using the default engine.
func CompileString(source string) (*Template, error) {
	return DefaultEngine.CompileString(source)
}

// CompileStringWithPartials compiles template source and named partial
// sources using the default engine.
func CompileStringWithPartials(source string, partials map[string]string) (*Template, error) {
	return DefaultEngine.CompileStringWithPartials(source, partials)
}

// RenderString compiles and renders in one step using the default engine.
func RenderString(source string, data interface{}) (string, error) {
	return DefaultEngine.RenderString(source, data)
}

// ClearCache clears the global template cache.
func ClearCache() {
	DefaultEngine.ClearCache()
}
