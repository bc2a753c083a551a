package mustache

import (
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		path      []string
		stack     []Value
		want      Value
		wantFound bool
	}{
		{
			name:      "empty path returns stack top",
			path:      nil,
			stack:     []Value{Mapping{}, Text("top")},
			want:      Text("top"),
			wantFound: true,
		},
		{
			name:      "empty path on empty stack",
			path:      nil,
			stack:     nil,
			wantFound: false,
		},
		{
			name:      "single segment",
			path:      []string{"name"},
			stack:     []Value{Mapping{"name": Text("Ferris")}},
			want:      Text("Ferris"),
			wantFound: true,
		},
		{
			name:      "missing key",
			path:      []string{"nope"},
			stack:     []Value{Mapping{"name": Text("Ferris")}},
			wantFound: false,
		},
		{
			name: "innermost mapping wins",
			path: []string{"k"},
			stack: []Value{
				Mapping{"k": Text("outer")},
				Mapping{"k": Text("inner")},
			},
			want:      Text("inner"),
			wantFound: true,
		},
		{
			name: "outer frame reachable when inner lacks the key",
			path: []string{"k"},
			stack: []Value{
				Mapping{"k": Text("outer")},
				Mapping{"other": Text("x")},
			},
			want:      Text("outer"),
			wantFound: true,
		},
		{
			name: "non-mapping frames are skipped",
			path: []string{"k"},
			stack: []Value{
				Mapping{"k": Text("found")},
				Text("scalar frame"),
				Sequence{Text("list frame")},
			},
			want:      Text("found"),
			wantFound: true,
		},
		{
			name: "dotted walk",
			path: []string{"a", "b", "c"},
			stack: []Value{Mapping{"a": Mapping{
				"b": Mapping{"c": Bool(true)},
			}}},
			want:      Bool(true),
			wantFound: true,
		},
		{
			name:      "walk through non-mapping fails",
			path:      []string{"a", "b"},
			stack:     []Value{Mapping{"a": Sequence{Text("x")}}},
			wantFound: false,
		},
		{
			name:      "walk to missing leaf fails",
			path:      []string{"a", "b"},
			stack:     []Value{Mapping{"a": Mapping{"c": Text("x")}}},
			wantFound: false,
		},
		{
			name: "first segment binds the base frame only",
			path: []string{"a", "b"},
			stack: []Value{
				Mapping{"a": Mapping{"b": Text("outer")}},
				// inner has "a" but without "b": the walk fails at the
				// inner base instead of retrying the outer frame
				Mapping{"a": Mapping{"c": Text("x")}},
			},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := lookup(tt.path, tt.stack)
			if found != tt.wantFound {
				t.Fatalf("lookup() found = %v, want %v", found, tt.wantFound)
			}
			if found && !Equal(got, tt.want) {
				t.Errorf("lookup() = %v, want %v", got, tt.want)
			}
		})
	}
}
