package i18n

import (
	"reflect"
	"testing"
)

func scenarioTable(t *testing.T) *Table {
	t.Helper()
	table, err := TableFromTree(map[Code]map[string]any{
		English: {"a": map[string]any{"b": "Hello"}},
		Chinese: {"a": map[string]any{"b": "你好"}},
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return table
}

func TestResolveScenario(t *testing.T) {
	t.Parallel()

	table := scenarioTable(t)
	tests := []struct {
		code Code
		path string
		want string
	}{
		{code: "en", path: "a.b", want: "Hello"},
		{code: "zh", path: "a.b", want: "你好"},
		{code: "en", path: "a.c", want: "a.c"},
		{code: "fr", path: "a.b", want: "a.b"},
	}
	for _, tc := range tests {
		if got := table.Resolve(tc.code, tc.path); got != tc.want {
			t.Fatalf("Resolve(%q, %q) = %q, want %q", tc.code, tc.path, got, tc.want)
		}
	}
}

func TestResolveFallsBackToPath(t *testing.T) {
	t.Parallel()

	table := scenarioTable(t)
	tests := []struct {
		name string
		path string
	}{
		{name: "subtree at tail", path: "a"},
		{name: "past a string", path: "a.b.c"},
		{name: "missing root", path: "missing.key"},
		{name: "empty segment", path: "a..b"},
		{name: "trailing dot", path: "a.b."},
		{name: "empty path", path: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, code := range []Code{English, Chinese, Japanese} {
				if got := table.Resolve(code, tc.path); got != tc.path {
					t.Fatalf("Resolve(%q, %q) = %q, want path back", code, tc.path, got)
				}
			}
		})
	}
}

func TestResolveOnNilTable(t *testing.T) {
	t.Parallel()

	var table *Table
	if got := table.Resolve(English, "hero.title"); got != "hero.title" {
		t.Fatalf("Resolve on nil table = %q", got)
	}
}

func TestAddRejectsConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		first  string
		second string
	}{
		{name: "duplicate", first: "hero.title", second: "hero.title"},
		{name: "leaf then child", first: "hero", second: "hero.title"},
		{name: "child then leaf", first: "hero.title", second: "hero"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			table := NewTable()
			if err := table.Add(English, tc.first, "x"); err != nil {
				t.Fatalf("add first: %v", err)
			}
			if err := table.Add(English, tc.second, "y"); err == nil {
				t.Fatalf("expected conflict adding %q after %q", tc.second, tc.first)
			}
		})
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	table := NewTable()
	if err := table.Add("", "a", "x"); err == nil {
		t.Fatal("expected missing language error")
	}
	if err := table.Add(English, "", "x"); err == nil {
		t.Fatal("expected empty path error")
	}
	if err := table.Add(English, "a..b", "x"); err == nil {
		t.Fatal("expected empty segment error")
	}
	if err := table.Add(English, "a", ""); err == nil {
		t.Fatal("expected empty value error")
	}
}

func TestTableFromTreeRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	_, err := TableFromTree(map[Code]map[string]any{English: {"count": 3}})
	if err == nil {
		t.Fatal("expected unsupported value error")
	}
}

func TestKeysAndHas(t *testing.T) {
	t.Parallel()

	table := NewTable()
	for _, path := range []string{"nav.back", "hero.title", "hero.subtitle"} {
		if err := table.Add(English, path, "v"); err != nil {
			t.Fatalf("add %q: %v", path, err)
		}
	}
	want := []string{"hero.subtitle", "hero.title", "nav.back"}
	if got := table.Keys(English); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if !table.Has(English, "hero.title") {
		t.Fatal("expected hero.title")
	}
	if table.Has(English, "hero") || table.Has(Chinese, "hero.title") {
		t.Fatal("unexpected Has match")
	}
	if got := table.Languages(); !reflect.DeepEqual(got, []Code{English}) {
		t.Fatalf("Languages() = %v", got)
	}
}
