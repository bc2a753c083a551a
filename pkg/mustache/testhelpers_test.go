package mustache

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// checkRender fails the test with a unified diff when got differs from
// want, which keeps multi-line render mismatches readable.
func checkRender(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("render mismatch\ngot:  %q\nwant: %q", got, want)
	}
	t.Errorf("render mismatch (-want +got):\n%s", diff)
}

// mustRender compiles source with the default engine and renders value.
func mustRender(t *testing.T, source string, value Value) string {
	t.Helper()
	tmpl, err := CompileString(source)
	if err != nil {
		t.Fatalf("CompileString(%q) error = %v", source, err)
	}
	got, err := tmpl.RenderValueString(value)
	if err != nil {
		t.Fatalf("RenderValueString() error = %v", err)
	}
	return got
}

// mustRenderExtended is mustRender with the structured-data extension
// enabled.
func mustRenderExtended(t *testing.T, source string, value Value) string {
	t.Helper()
	config := DefaultConfig()
	config.ExtendedJSON = true
	engine := NewWithConfig(config)
	tmpl, err := engine.CompileString(source)
	if err != nil {
		t.Fatalf("CompileString(%q) error = %v", source, err)
	}
	got, err := tmpl.RenderValueString(value)
	if err != nil {
		t.Fatalf("RenderValueString() error = %v", err)
	}
	return got
}
