package categories

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/config"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage/jsonstore"
	"github.com/DEVBOX10/Ididit/internal/tracker"
)

func setupTestStore(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := jsonstore.New(filepath.Join(dir, "ididit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := cli.NewContext(&config.Config{SettingsPath: filepath.Join(dir, "config.yaml")}, store)
	out := &bytes.Buffer{}
	ctx.Out = out
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close context: %v", err)
		}
	})
	return ctx, out
}

func TestCategoryCommands(t *testing.T) {
	ctx, out := setupTestStore(t)

	if err := (&CategoryAddCmd{Name: "Health"}).Run(ctx); err != nil {
		t.Fatalf("category add failed: %v", err)
	}
	if err := (&CategoryAddCmd{Name: "Running", Parent: 2}).Run(ctx); err != nil {
		t.Fatalf("category add with parent failed: %v", err)
	}
	if err := (&CategoryRenameCmd{ID: 3, Name: "Jogging"}).Run(ctx); err != nil {
		t.Fatalf("category rename failed: %v", err)
	}

	out.Reset()
	if err := (&CategoryListCmd{}).Run(ctx); err != nil {
		t.Fatalf("category list failed: %v", err)
	}
	want := "[1] ididit! (0 goals)\n  [2] Health (0 goals)\n    [3] Jogging (0 goals)\n"
	if out.String() != want {
		t.Errorf("category list = %q, want %q", out.String(), want)
	}

	if err := (&CategoryDeleteCmd{ID: 2}).Run(ctx); err != nil {
		t.Fatalf("category delete failed: %v", err)
	}
	tr, _ := ctx.Tracker()
	if _, ok := tr.Data().Category(3); ok {
		t.Error("sub-category should be deleted with its parent")
	}
}

func TestCategoryDeleteRoot(t *testing.T) {
	ctx, _ := setupTestStore(t)

	err := (&CategoryDeleteCmd{ID: 1}).Run(ctx)
	if !errors.Is(err, tracker.ErrRootCategory) {
		t.Errorf("expected ErrRootCategory, got %v", err)
	}
}

func TestCategoryUnknownParent(t *testing.T) {
	ctx, _ := setupTestStore(t)

	err := (&CategoryAddCmd{Name: "Lost", Parent: 42}).Run(ctx)
	if !errors.Is(err, models.ErrIdentifierNotFound) {
		t.Errorf("expected ErrIdentifierNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("error should name the id: %v", err)
	}
}
