package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/eval/template"
	"github.com/aescanero/dago-node-render/internal/selector"
	"github.com/aescanero/dago-node-render/internal/value"
)

const (
	// PathInline marks a request rendered from inline source
	PathInline = "inline"
	// PathNamed marks a request rendered from a stored template
	PathNamed = "named"
)

var (
	// ErrInvalidRequest is wrapped by every request validation failure
	ErrInvalidRequest = errors.New("invalid render request")
	// ErrSelectionDisabled is returned for selection requests when CEL is disabled
	ErrSelectionDisabled = errors.New("template selection is disabled")
)

// TemplateStore loads and saves template sources by name
type TemplateStore interface {
	Load(ctx context.Context, name string) (string, error)
	Save(ctx context.Context, name, source string, ttl time.Duration) error
}

// RenderRequest represents a render work request
type RenderRequest struct {
	RequestID    string           `json:"request_id"`
	Template     string           `json:"template,omitempty"`
	TemplateName string           `json:"template_name,omitempty"`
	Selection    *selector.Config `json:"selection,omitempty"`
	Data         json.RawMessage  `json:"data,omitempty"`
	// StoreAs saves an inline template under this name once it rendered
	StoreAs string `json:"store_as,omitempty"`
}

// RenderResult represents a completed render
type RenderResult struct {
	RequestID string    `json:"request_id"`
	Template  string    `json:"template,omitempty"`
	Output    string    `json:"output"`
	PathTaken string    `json:"path_taken"`
	Reasoning string    `json:"reasoning,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// parseRenderRequest parses a render request from Redis message values
func parseRenderRequest(values map[string]interface{}) (*RenderRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid 'data' field", ErrInvalidRequest)
	}

	var request RenderRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal: %v", ErrInvalidRequest, err)
	}

	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}

	return &request, nil
}

// validate checks that exactly one template source is set
func (r *RenderRequest) validate() error {
	sources := 0
	if r.Template != "" {
		sources++
	}
	if r.TemplateName != "" {
		sources++
	}
	if r.Selection != nil {
		sources++
	}

	if sources != 1 {
		return fmt.Errorf("%w: exactly one of template, template_name or selection is required", ErrInvalidRequest)
	}
	if r.StoreAs != "" && r.Template == "" {
		return fmt.Errorf("%w: store_as requires an inline template", ErrInvalidRequest)
	}
	return nil
}

// decodeData converts the request payload to a dynamic value for selection
// rules and to native data for rendering. Native numbers stay json.Number so
// they print exactly as sent. An absent payload renders against an empty object.
func (r *RenderRequest) decodeData() (value.Value, interface{}, error) {
	if len(r.Data) == 0 {
		return value.Object(nil), map[string]interface{}{}, nil
	}

	data, err := value.ParseJSON(r.Data)
	if err != nil {
		return value.Null(), nil, fmt.Errorf("%w: data: %v", ErrInvalidRequest, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(r.Data))
	decoder.UseNumber()
	var native interface{}
	if err := decoder.Decode(&native); err != nil {
		return value.Null(), nil, fmt.Errorf("%w: data: %v", ErrInvalidRequest, err)
	}

	return data, native, nil
}

// Processor resolves and renders render requests
type Processor struct {
	engine      *template.Engine
	selector    *selector.Selector
	templates   TemplateStore
	templateTTL time.Duration
	logger      *zap.Logger
}

// NewProcessor creates a new processor. A nil selector disables selection
// requests; templateTTL applies to templates saved through store_as.
func NewProcessor(engine *template.Engine, sel *selector.Selector, templates TemplateStore, templateTTL time.Duration, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		engine:      engine,
		selector:    sel,
		templates:   templates,
		templateTTL: templateTTL,
		logger:      logger,
	}
}

// Process renders a single request
func (p *Processor) Process(ctx context.Context, request *RenderRequest) (*RenderResult, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	data, native, err := request.decodeData()
	if err != nil {
		return nil, err
	}

	// Resolve the template source
	result := &RenderResult{RequestID: request.RequestID}
	source, err := p.resolveTemplate(ctx, request, data, result)
	if err != nil {
		return nil, err
	}

	// Render against the exact native data
	output, err := p.engine.Render(source, native)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	// Store the inline source only once it rendered
	if request.StoreAs != "" {
		if p.templates == nil {
			return nil, fmt.Errorf("no template store configured for %q", request.StoreAs)
		}
		if err := p.templates.Save(ctx, request.StoreAs, source, p.templateTTL); err != nil {
			return nil, fmt.Errorf("failed to store template: %w", err)
		}
		result.Template = request.StoreAs
	}

	result.Output = output
	result.Timestamp = time.Now().UTC()

	p.logger.Debug("rendered template",
		zap.String("request_id", result.RequestID),
		zap.String("template", result.Template),
		zap.String("path", result.PathTaken),
		zap.Int("output_length", len(output)),
	)

	return result, nil
}

// resolveTemplate returns the template source for request and records how it was chosen
func (p *Processor) resolveTemplate(ctx context.Context, request *RenderRequest, data value.Value, result *RenderResult) (string, error) {
	switch {
	case request.Template != "":
		result.PathTaken = PathInline
		return request.Template, nil

	case request.TemplateName != "":
		result.Template = request.TemplateName
		result.PathTaken = PathNamed
		return p.load(ctx, request.TemplateName)

	default:
		if p.selector == nil {
			return "", ErrSelectionDisabled
		}

		vars, _ := data.Interface().(map[string]interface{})
		if vars == nil {
			vars = map[string]interface{}{}
		}

		selection, err := p.selector.Select(ctx, vars, request.Selection)
		if err != nil {
			return "", fmt.Errorf("selection failed: %w", err)
		}

		result.Template = selection.Template
		result.PathTaken = selection.PathTaken
		result.Reasoning = selection.Reasoning
		return p.load(ctx, selection.Template)
	}
}

func (p *Processor) load(ctx context.Context, name string) (string, error) {
	if p.templates == nil {
		return "", fmt.Errorf("no template store configured for %q", name)
	}
	source, err := p.templates.Load(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to load template: %w", err)
	}
	return source, nil
}
