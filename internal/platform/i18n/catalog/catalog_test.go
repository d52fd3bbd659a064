package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/louisbranch/talenthub/internal/platform/i18n"
)

func TestLoadEmbeddedCoversEverySupportedLanguage(t *testing.T) {
	t.Parallel()

	table, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	baseKeys := table.Keys(i18n.Base)
	if len(baseKeys) == 0 {
		t.Fatal("expected base language keys")
	}
	for _, code := range i18n.Supported() {
		if got := table.Keys(code); !reflect.DeepEqual(got, baseKeys) {
			t.Fatalf("language %s keys differ from base:\n got %v\nwant %v", code, got, baseKeys)
		}
	}
}

func TestEmbeddedKeysResolveToTranslations(t *testing.T) {
	t.Parallel()

	table := MustLoadEmbedded()
	for _, code := range i18n.Supported() {
		for _, key := range table.Keys(code) {
			got := table.Resolve(code, key)
			if got == "" || got == key {
				t.Fatalf("Resolve(%s, %q) = %q", code, key, got)
			}
		}
	}
}

func TestEmbeddedHeroTitleDiffersAcrossLanguages(t *testing.T) {
	t.Parallel()

	table := MustLoadEmbedded()
	en := table.Resolve(i18n.English, "hero.title")
	zh := table.Resolve(i18n.Chinese, "hero.title")
	if en == zh {
		t.Fatalf("expected distinct hero titles, got %q", en)
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/core.yaml"), `locale: "zh"
namespace: "core"
messages:
  "nav.back": "Back"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRejectsUnsupportedLocale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/core.yaml"), `locale: "en"
namespace: "core"
messages:
  "nav.back": "Back"
`)
	mustWriteFile(t, filepath.Join(dir, "locales/fr/core.yaml"), `locale: "fr"
namespace: "core"
messages:
  "nav.back": "Retour"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected unsupported locale error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/core.yaml"), `locale: "en"
namespace: "core"
messages:
  "nav.back": "Back"
`)
	mustWriteFile(t, filepath.Join(dir, "locales/en/home.yaml"), `locale: "en"
namespace: "home"
messages:
  "nav.back": "Return"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsLeafAndBranchConflict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/core.yaml"), `locale: "en"
namespace: "core"
messages:
  "hero": "Hero"
  "hero.title": "Title"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected conflict error")
	}
}

func TestLoadFromFSRequiresBaseLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/zh/core.yaml"), `locale: "zh"
namespace: "core"
messages:
  "nav.back": "返回"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected missing base language error")
	}
}

func TestParseCatalogFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "locale: \"en\"\nnamespace: \"core\"\n# note\nmessages:\n  \"a.b\": \"say \\\"hi\\\"\"\n"},
		{name: "entry before messages", input: "locale: \"en\"\nnamespace: \"core\"\n  \"a.b\": \"x\"\n", wantErr: true},
		{name: "missing separator", input: "locale: \"en\"\nnamespace: \"core\"\nmessages:\n  \"a.b\" \"x\"\n", wantErr: true},
		{name: "unterminated key", input: "locale: \"en\"\nnamespace: \"core\"\nmessages:\n  \"a.b: \"x\"\n", wantErr: true},
		{name: "no messages", input: "locale: \"en\"\nnamespace: \"core\"\nmessages:\n", wantErr: true},
		{name: "blank key", input: "locale: \"en\"\nnamespace: \"core\"\nmessages:\n  \" \": \"x\"\n", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			file, err := parseCatalogFile([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := file.Messages["a.b"]; got != `say "hi"` {
				t.Fatalf("message = %q", got)
			}
		})
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
