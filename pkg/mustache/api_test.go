package mustache

import (
	"testing"
)

func TestEngineRenderString(t *testing.T) {
	engine := New()
	got, err := engine.RenderString("Hello, {{name}}!", map[string]interface{}{
		"name": "World",
	})
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	checkRender(t, got, "Hello, World!")
}

func TestPackageLevelRenderString(t *testing.T) {
	got, err := RenderString("{{a}}{{b}}", map[string]interface{}{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	checkRender(t, got, "xy")
}

func TestEngineConfigIsRespected(t *testing.T) {
	config := DefaultConfig()
	config.ExtendedJSON = true
	engine := NewWithConfig(config)

	got, err := engine.RenderString("{{$v}}", Mapping{"v": Sequence{Text("a")}})
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	checkRender(t, got, `["a"]`)

	if engine.Config() != config {
		t.Error("Config() did not return the engine's configuration")
	}
}

func TestNewWithOptions(t *testing.T) {
	engine := NewWithOptions(WithExtendedJSON(true), WithCache(5))

	if !engine.Config().ExtendedJSON {
		t.Error("ExtendedJSON = false, want true")
	}
	if engine.Config().CacheMaxSize != 5 {
		t.Errorf("CacheMaxSize = %d, want 5", engine.Config().CacheMaxSize)
	}

	// options act on a copy of the global config
	if GetGlobalConfig().ExtendedJSON {
		t.Error("options leaked into the global configuration")
	}
}

func TestNewWithOptionsWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.LogLevel = "error"
	engine := NewWithOptions(WithConfig(config), WithExtendedJSON(true))

	if engine.Config().LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", engine.Config().LogLevel, "error")
	}
	if !engine.Config().ExtendedJSON {
		t.Error("ExtendedJSON = false, want true")
	}
}

func TestCompileCached(t *testing.T) {
	config := DefaultConfig()
	engine := NewWithConfig(config)

	first, err := engine.CompileCached("greeting", "Hello, {{name}}")
	if err != nil {
		t.Fatalf("CompileCached() error = %v", err)
	}
	second, err := engine.CompileCached("greeting", "ignored: the key wins")
	if err != nil {
		t.Fatalf("CompileCached() error = %v", err)
	}
	if first != second {
		t.Error("CompileCached() recompiled instead of reusing the cached template")
	}

	engine.ClearCache()
	third, err := engine.CompileCached("greeting", "Hello, {{name}}")
	if err != nil {
		t.Fatalf("CompileCached() error = %v", err)
	}
	if third == first {
		t.Error("CompileCached() returned a cached template after ClearCache()")
	}
}

func TestCompileCachedPropagatesParseErrors(t *testing.T) {
	engine := NewWithConfig(DefaultConfig())
	_, err := engine.CompileCached("bad", "{{#open}}never closed")
	if err == nil {
		t.Fatal("CompileCached() expected error")
	}
	if !IsParseError(err) {
		t.Errorf("error = %v, want a ParseError", err)
	}
}

func TestTemplateIntrospection(t *testing.T) {
	tmpl, err := CompileStringWithPartials("{{a}}", map[string]string{
		"p1": "x",
		"p2": "y",
	})
	if err != nil {
		t.Fatalf("CompileStringWithPartials() error = %v", err)
	}

	if len(tmpl.Tokens()) != 1 {
		t.Errorf("Tokens() = %d tokens, want 1", len(tmpl.Tokens()))
	}

	names := tmpl.PartialNames()
	if len(names) != 2 {
		t.Fatalf("PartialNames() = %v, want 2 names", names)
	}
	seen := map[string]bool{}
	for _, name := range names {
		seen[name] = true
	}
	if !seen["p1"] || !seen["p2"] {
		t.Errorf("PartialNames() = %v, want p1 and p2", names)
	}
}

func TestCompileStringWithPartialsBadPartial(t *testing.T) {
	_, err := CompileStringWithPartials("ok", map[string]string{
		"bad": "{{unclosed",
	})
	if err == nil {
		t.Fatal("CompileStringWithPartials() expected error for invalid partial")
	}
	if !IsParseError(err) {
		t.Errorf("error = %v, want a ParseError", err)
	}
}
