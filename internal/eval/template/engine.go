package template

import (
	"fmt"
	"sync"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/helper"
	"github.com/aescanero/dago-node-render/internal/value"
)

// Engine renders Handlebars templates
type Engine struct {
	cache   map[string]*raymond.Template
	mu      sync.RWMutex
	helpers map[string]interface{}
	logger  *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHelper binds an extra helper function on every compiled template.
// It replaces a built-in helper of the same name.
func WithHelper(name string, fn interface{}) Option {
	return func(e *Engine) {
		e.helpers[name] = fn
	}
}

// NewEngine creates a new template engine
func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		cache:   make(map[string]*raymond.Template),
		helpers: builtinHelpers(),
		logger:  zap.NewNop(),
	}

	// Conditional block helpers
	for name, h := range helper.Builtins() {
		engine.helpers[name] = blockHelper(h)
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Render renders a template with the given data
func (e *Engine) Render(templateStr string, data interface{}) (string, error) {
	// Get or compile template
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	// Execute the template
	return e.exec(tmpl, data)
}

// RenderValue renders a template against a dynamic value
func (e *Engine) RenderValue(templateStr string, data value.Value) (string, error) {
	return e.Render(templateStr, data.Interface())
}

func (e *Engine) exec(tmpl *raymond.Template, data interface{}) (string, error) {
	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return result, nil
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	tmpl, err := e.compile(templateStr)
	if err != nil {
		return nil, err
	}

	// Cache the template
	e.cache[templateStr] = tmpl
	e.logger.Debug("compiled template",
		zap.Int("source_length", len(templateStr)),
		zap.Int("cache_size", len(e.cache)),
	)

	return tmpl, nil
}

// compile parses a template and binds the engine helpers on it
func (e *Engine) compile(templateStr string) (*raymond.Template, error) {
	// Parse the template
	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	// Bind helpers on this template only
	for name, fn := range e.helpers {
		tmpl.RegisterHelper(name, fn)
	}

	return tmpl, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(templateStr)
	return err
}

// CacheSize returns the number of compiled templates held in cache
func (e *Engine) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
	e.logger.Debug("template cache cleared")
}
