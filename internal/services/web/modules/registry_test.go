package modules

import (
	"strings"
	"testing"

	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func TestDefaultModulesOrderAndIDs(t *testing.T) {
	t.Parallel()

	public := DefaultPublicModules(Dependencies{})
	protected := DefaultProtectedModules(Dependencies{})

	wantPublic := []string{"landing", "jobs", "language", "resume", "authflow"}
	if len(public) != len(wantPublic) {
		t.Fatalf("public module count = %d, want %d", len(public), len(wantPublic))
	}
	for i, want := range wantPublic {
		if got := public[i].ID(); got != want {
			t.Fatalf("public module[%d] id = %q, want %q", i, got, want)
		}
	}
	if len(protected) != 1 || protected[0].ID() != "admin" {
		t.Fatalf("protected modules = %v", protected)
	}
}

func TestModulesHaveUniquePatterns(t *testing.T) {
	t.Parallel()

	all := append(DefaultPublicModules(Dependencies{}), DefaultProtectedModules(Dependencies{})...)
	seen := map[string]string{}
	for _, module := range all {
		mount, err := module.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", module.ID(), err)
		}
		if mount.Handler == nil {
			t.Fatalf("module %q handler is nil", module.ID())
		}
		if len(mount.Patterns) == 0 {
			t.Fatalf("module %q has no patterns", module.ID())
		}
		for _, pattern := range mount.Patterns {
			if owner, ok := seen[pattern]; ok {
				t.Fatalf("pattern %q mounted by %q and %q", pattern, owner, module.ID())
			}
			seen[pattern] = module.ID()
		}
	}
}

func TestProtectedModulesMountUnderDashboard(t *testing.T) {
	t.Parallel()

	for _, module := range DefaultProtectedModules(Dependencies{}) {
		mount, err := module.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", module.ID(), err)
		}
		for _, pattern := range mount.Patterns {
			if !strings.HasPrefix(pattern, routepath.Dashboard) {
				t.Fatalf("module %q pattern %q is outside the dashboard", module.ID(), pattern)
			}
		}
	}
}
