package pipeline

import (
	"testing"

	"github.com/matzehuels/includeviz/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v, want nil", err)
	}

	opts.Prefixes = []string{"src/", ""}
	if err := opts.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() with empty prefix = %v, want INVALID_INPUT", err)
	}

	opts = DefaultOptions()
	opts.MinRingGap = 0
	if err := opts.Validate(); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("Validate() with zero gap = %v, want INVALID_OPTIONS", err)
	}

	opts = DefaultOptions()
	opts.Placer = "spiral"
	if err := opts.Validate(); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("Validate() with unknown placer = %v, want INVALID_OPTIONS", err)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := DefaultOptions()
	a.Prefixes = []string{"src/", "include/"}
	b := DefaultOptions()
	b.Prefixes = []string{"include/", "src/", "src/"}

	ka, kb := a.LayoutKeyOpts(), b.LayoutKeyOpts()
	if len(ka.Prefixes) != 2 || len(kb.Prefixes) != 2 {
		t.Fatalf("Prefixes = %v and %v, want 2 each", ka.Prefixes, kb.Prefixes)
	}
	for i := range ka.Prefixes {
		if ka.Prefixes[i] != kb.Prefixes[i] {
			t.Errorf("Prefixes[%d] = %q and %q, want equal", i, ka.Prefixes[i], kb.Prefixes[i])
		}
	}

	var empty Options
	if got := empty.LayoutKeyOpts().Placer; got != "median" {
		t.Errorf("LayoutKeyOpts().Placer = %q, want median", got)
	}
	if a.Prefixes[0] != "src/" {
		t.Error("LayoutKeyOpts must not reorder the caller's prefixes")
	}
}

func TestRenderOptionsValidate(t *testing.T) {
	var opts RenderOptions
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}

	tests := []struct {
		name    string
		opts    RenderOptions
		wantErr bool
	}{
		{"known types", RenderOptions{Types: []string{"tree", "back", "root"}}, false},
		{"unknown type", RenderOptions{Types: []string{"cross"}}, true},
		{"negative scale", RenderOptions{Scale: -1}, true},
		{"bad format", RenderOptions{Formats: []string{"gif"}}, true},
	}
	for _, tt := range tests {
		err := tt.opts.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestRenderKeyOpts(t *testing.T) {
	a := RenderOptions{Types: []string{"tree", "back"}}
	b := RenderOptions{Types: []string{"back", "tree"}}
	ka, kb := a.RenderKeyOpts("svg"), b.RenderKeyOpts("svg")
	if ka.Types[0] != kb.Types[0] || ka.Types[1] != kb.Types[1] {
		t.Errorf("RenderKeyOpts types = %v and %v, want same order", ka.Types, kb.Types)
	}
	if ka.Format != "svg" {
		t.Errorf("Format = %q, want svg", ka.Format)
	}
}
