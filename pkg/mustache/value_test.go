package mustache

import (
	"reflect"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{name: "nulls", a: Null{}, b: Null{}, want: true},
		{name: "equal text", a: Text("x"), b: Text("x"), want: true},
		{name: "different text", a: Text("x"), b: Text("y"), want: false},
		{name: "equal bools", a: Bool(true), b: Bool(true), want: true},
		{name: "different bools", a: Bool(true), b: Bool(false), want: false},
		{name: "different variants", a: Text("true"), b: Bool(true), want: false},
		{name: "null vs text", a: Null{}, b: Text(""), want: false},
		{
			name: "equal sequences",
			a:    Sequence{Text("a"), Bool(true)},
			b:    Sequence{Text("a"), Bool(true)},
			want: true,
		},
		{
			name: "different length sequences",
			a:    Sequence{Text("a")},
			b:    Sequence{Text("a"), Text("b")},
			want: false,
		},
		{
			name: "equal mappings",
			a:    Mapping{"k": Sequence{Text("v")}},
			b:    Mapping{"k": Sequence{Text("v")}},
			want: true,
		},
		{
			name: "different mapping keys",
			a:    Mapping{"k": Text("v")},
			b:    Mapping{"j": Text("v")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqualLambdasIsNotEqual(t *testing.T) {
	// lambdas are not comparable; the comparison must not panic and
	// must evaluate to false, whatever the other operand is
	fn := func(s string) string { return s }
	lambda := NewLambda(fn)

	if Equal(lambda, lambda) {
		t.Error("Equal(lambda, lambda) = true, want false")
	}
	if Equal(lambda, Text("x")) {
		t.Error("Equal(lambda, text) = true, want false")
	}
	if Equal(Null{}, lambda) {
		t.Error("Equal(null, lambda) = true, want false")
	}
}

func TestSortedKeys(t *testing.T) {
	m := Mapping{"zeta": Null{}, "alpha": Null{}, "mid": Null{}}
	want := []string{"alpha", "mid", "zeta"}
	if got := sortedKeys(m); !reflect.DeepEqual(got, want) {
		t.Errorf("sortedKeys() = %v, want %v", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "null", value: Null{}, want: "null"},
		{name: "text", value: Text("hi"), want: `"hi"`},
		{name: "html stays verbatim", value: Text("<a>&'\""), want: `"<a>&'\""`},
		{name: "escaped control characters", value: Text("a\nb\tc"), want: `"a\nb\tc"`},
		{name: "bool", value: Bool(true), want: "true"},
		{name: "empty sequence", value: Sequence{}, want: "[]"},
		{
			name:  "sequence",
			value: Sequence{Bool(true), Text("String1"), Bool(false)},
			want:  `[true,"String1",false]`,
		},
		{name: "empty mapping", value: Mapping{}, want: "{}"},
		{
			name: "mapping keys sorted",
			value: Mapping{
				"key3": Text("Value3"),
				"key1": Text("Value1"),
				"key2": Bool(true),
			},
			want: `{"key1":"Value1","key2":true,"key3":"Value3"}`,
		},
		{
			name:  "lambda serializes as null",
			value: Mapping{"f": NewLambda(func(s string) string { return s })},
			want:  `{"f":null}`,
		},
		{
			name: "nested",
			value: Mapping{"m": Mapping{
				"seq": Sequence{Text("a")},
			}},
			want: `{"m":{"seq":["a"]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalJSON(tt.value)
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarshalJSONIndent(t *testing.T) {
	value := Mapping{"a": Text("String"), "b": Bool(true)}
	want := "{\n  \"a\": \"String\",\n  \"b\": true\n}"

	got, err := MarshalJSONIndent(value)
	if err != nil {
		t.Fatalf("MarshalJSONIndent() error = %v", err)
	}
	checkRender(t, string(got), want)
}
