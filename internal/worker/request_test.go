package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/eval/template"
	"github.com/aescanero/dago-node-render/internal/selector"
)

var errNotFound = errors.New("not found")

type memoryTemplates map[string]string

func (m memoryTemplates) Load(_ context.Context, name string) (string, error) {
	source, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errNotFound, name)
	}
	return source, nil
}

func (m memoryTemplates) Save(_ context.Context, name, source string, _ time.Duration) error {
	m[name] = source
	return nil
}

func newTestProcessor(sel *selector.Selector) *Processor {
	templates := memoryTemplates{
		"greeting":    "{{#if vip}}Welcome back {{name}}{{else}}Hello {{name}}{{/if}}",
		"greeting_es": "{{#unless vip}}Hola {{name}}{{else}}Bienvenido {{name}}{{/unless}}",
		"items":       "{{#if count includeZero=true}}{{count}} items{{else}}unknown{{/if}}",
	}
	return NewProcessor(template.NewEngine(), sel, templates, time.Hour, zap.NewNop())
}

func TestParseRenderRequest(t *testing.T) {
	request, err := parseRenderRequest(map[string]interface{}{
		"data": `{"request_id":"r-1","template_name":"greeting","data":{"name":"Ada"}}`,
	})
	if err != nil {
		t.Fatalf("parseRenderRequest: %v", err)
	}

	want := &RenderRequest{
		RequestID:    "r-1",
		TemplateName: "greeting",
		Data:         json.RawMessage(`{"name":"Ada"}`),
	}
	if diff := cmp.Diff(want, request); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRenderRequestAssignsID(t *testing.T) {
	request, err := parseRenderRequest(map[string]interface{}{"data": `{"template":"x"}`})
	if err != nil {
		t.Fatalf("parseRenderRequest: %v", err)
	}
	if _, err := uuid.Parse(request.RequestID); err != nil {
		t.Errorf("request id %q is not a uuid: %v", request.RequestID, err)
	}
}

func TestParseRenderRequestErrors(t *testing.T) {
	for _, values := range []map[string]interface{}{
		{},
		{"data": 42},
		{"data": "{not json"},
	} {
		if _, err := parseRenderRequest(values); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("parseRenderRequest(%v) error = %v, want ErrInvalidRequest", values, err)
		}
	}
}

func TestProcess(t *testing.T) {
	selection := &selector.Config{
		Rules:    []selector.Rule{{Condition: "data.locale == 'es'", Template: "greeting_es"}},
		Fallback: "greeting",
	}

	tests := []struct {
		name    string
		request *RenderRequest
		want    *RenderResult
	}{
		{
			name: "inline if",
			request: &RenderRequest{
				RequestID: "r-1",
				Template:  "{{#if this}}hello{{/if}}",
				Data:      json.RawMessage(`true`),
			},
			want: &RenderResult{RequestID: "r-1", Output: "hello", PathTaken: PathInline},
		},
		{
			name: "inline dotted path",
			request: &RenderRequest{
				RequestID: "r-2",
				Template:  "{{#if a.c.d}}hello {{a.b}}{{/if}}",
				Data:      json.RawMessage(`{"a":{"b":99,"c":{"d":true}}}`),
			},
			want: &RenderResult{RequestID: "r-2", Output: "hello 99", PathTaken: PathInline},
		},
		{
			name: "inline without data",
			request: &RenderRequest{
				RequestID: "r-3",
				Template:  "{{#unless missing}}empty{{/unless}}",
			},
			want: &RenderResult{RequestID: "r-3", Output: "empty", PathTaken: PathInline},
		},
		{
			name: "named",
			request: &RenderRequest{
				RequestID:    "r-4",
				TemplateName: "items",
				Data:         json.RawMessage(`{"count":0}`),
			},
			want: &RenderResult{RequestID: "r-4", Template: "items", Output: "0 items", PathTaken: PathNamed},
		},
		{
			name: "selection rule",
			request: &RenderRequest{
				RequestID: "r-5",
				Selection: selection,
				Data:      json.RawMessage(`{"locale":"es","vip":false,"name":"Ada"}`),
			},
			want: &RenderResult{
				RequestID: "r-5",
				Template:  "greeting_es",
				Output:    "Hola Ada",
				PathTaken: selector.PathRule,
				Reasoning: "matched rule 0: data.locale == 'es'",
			},
		},
		{
			name: "selection fallback",
			request: &RenderRequest{
				RequestID: "r-6",
				Selection: selection,
				Data:      json.RawMessage(`{"locale":"en","vip":true,"name":"Ada"}`),
			},
			want: &RenderResult{
				RequestID: "r-6",
				Template:  "greeting",
				Output:    "Welcome back Ada",
				PathTaken: selector.PathFallback,
				Reasoning: "no rules matched",
			},
		},
	}

	processor := newTestProcessor(selector.NewSelector(zap.NewNop()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := processor.Process(context.Background(), tt.request)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if got.Timestamp.IsZero() {
				t.Error("timestamp not set")
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(RenderResult{}, "Timestamp")); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessKeepsNumbersExact(t *testing.T) {
	processor := newTestProcessor(nil)

	tests := []struct {
		data string
		want string
	}{
		{`{"id":9007199254740993}`, "9007199254740993"},
		{`{"id":12345678901234567890}`, "12345678901234567890"},
		{`{"id":0.10}`, "0.10"},
		{`{"id":0}`, "none"},
	}

	for _, tt := range tests {
		result, err := processor.Process(context.Background(), &RenderRequest{
			Template: "{{#if id}}{{id}}{{else}}none{{/if}}",
			Data:     json.RawMessage(tt.data),
		})
		if err != nil {
			t.Fatalf("Process(%s): %v", tt.data, err)
		}
		if result.Output != tt.want {
			t.Errorf("Process(%s) output = %q, want %q", tt.data, result.Output, tt.want)
		}
	}
}

func TestProcessErrors(t *testing.T) {
	withSelector := newTestProcessor(selector.NewSelector(zap.NewNop()))
	withoutSelector := newTestProcessor(nil)

	tests := []struct {
		name      string
		processor *Processor
		request   *RenderRequest
		wantErr   error
	}{
		{"no source", withSelector, &RenderRequest{}, ErrInvalidRequest},
		{"two sources", withSelector, &RenderRequest{Template: "x", TemplateName: "items"}, ErrInvalidRequest},
		{"bad data", withSelector, &RenderRequest{Template: "x", Data: json.RawMessage(`{`)}, ErrInvalidRequest},
		{"unknown template", withSelector, &RenderRequest{TemplateName: "nope"}, errNotFound},
		{"selection disabled", withoutSelector, &RenderRequest{Selection: &selector.Config{Fallback: "greeting"}}, ErrSelectionDisabled},
		{"invalid selection", withSelector, &RenderRequest{Selection: &selector.Config{}}, selector.ErrInvalidConfig},
		{"store_as without inline", withSelector, &RenderRequest{TemplateName: "items", StoreAs: "copy"}, ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.processor.Process(context.Background(), tt.request)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Process() error = %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Errorf("Process() returned a result on failure: %+v", result)
			}
		})
	}
}

func TestProcessStoreAs(t *testing.T) {
	templates := memoryTemplates{}
	processor := NewProcessor(template.NewEngine(), nil, templates, 0, zap.NewNop())

	result, err := processor.Process(context.Background(), &RenderRequest{
		RequestID: "r-1",
		Template:  "{{#unless this}}hello{{else}}world{{/unless}}",
		Data:      json.RawMessage(`true`),
		StoreAs:   "greeting",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Output != "world" || result.Template != "greeting" {
		t.Errorf("unexpected result %+v", result)
	}

	named, err := processor.Process(context.Background(), &RenderRequest{TemplateName: "greeting", Data: json.RawMessage(`false`)})
	if err != nil {
		t.Fatalf("Process named: %v", err)
	}
	if named.Output != "hello" {
		t.Errorf("stored template output = %q, want hello", named.Output)
	}
}

func TestProcessStoreAsSkippedOnFailure(t *testing.T) {
	templates := memoryTemplates{}
	processor := NewProcessor(template.NewEngine(), nil, templates, 0, zap.NewNop())

	_, err := processor.Process(context.Background(), &RenderRequest{Template: "{{#if a}}open", StoreAs: "broken"})
	if err == nil {
		t.Fatal("expected render failure")
	}
	if _, ok := templates["broken"]; ok {
		t.Error("a template that failed to render must not be stored")
	}
}

func TestProcessCompileError(t *testing.T) {
	processor := newTestProcessor(nil)
	_, err := processor.Process(context.Background(), &RenderRequest{Template: "{{#if a}}open"})
	if err == nil {
		t.Fatal("expected render failure")
	}
}

func TestErrorEvent(t *testing.T) {
	event := errorEvent(&RenderRequest{RequestID: "r-1", TemplateName: "greeting"}, errors.New("boom"))

	if event["request_id"] != "r-1" || event["template_name"] != "greeting" || event["error"] != "boom" {
		t.Errorf("unexpected error event %v", event)
	}
}
