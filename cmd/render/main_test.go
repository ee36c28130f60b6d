package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aescanero/dago-node-render/internal/eval/template"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDataRendersConditionals(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		tmpl string
		want string
	}{
		{
			name: "yaml",
			file: "data.yaml",
			data: "a:\n  b: 99\n  c:\n    d: true\n",
			tmpl: "{{#if a.c.d}}hello {{a.b}}{{/if}}",
			want: "hello 99",
		},
		{
			name: "json",
			file: "data.json",
			data: `{"a": 0}`,
			tmpl: "{{#if a includeZero=true}}1{{else}}0{{/if}}",
			want: "1",
		},
		{
			name: "yaml nan",
			file: "nan.yaml",
			data: "a: .nan\n",
			tmpl: "{{#if a includeZero=true}}1{{else}}0{{/if}}",
			want: "0",
		},
	}

	engine := template.NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := loadData(writeFile(t, tt.file, tt.data))
			if err != nil {
				t.Fatalf("loadData: %v", err)
			}
			got, err := engine.RenderValue(tt.tmpl, data)
			if err != nil {
				t.Fatalf("RenderValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDataWithoutFile(t *testing.T) {
	data, err := loadData("")
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if data.Len() != 0 {
		t.Errorf("expected empty object, got %v", data)
	}
}

func TestLoadDataErrors(t *testing.T) {
	if _, err := loadData(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := loadData(writeFile(t, "bad.yaml", "a: [1, 2\n")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
