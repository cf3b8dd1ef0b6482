//go:build e2e

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding the binary via env var, default to ../../bin/ididit (relative to tests/e2e)
	cliPath := os.Getenv("IDIDIT_BIN")
	if cliPath == "" {
		cliPath = filepath.Join("..", "..", "bin", "ididit")
	}
	cliPath, _ = filepath.Abs(cliPath)
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Fatalf("CLI binary not found at %s. Please build it first (mage build).", cliPath)
	}

	// Create temp home for isolation
	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var cleanEnv []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "IDIDIT_") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	cleanEnv = append(cleanEnv, fmt.Sprintf("HOME=%s", tempDir))
	cleanEnv = append(cleanEnv, fmt.Sprintf("IDIDIT_DATABASE=%s", filepath.Join(tempDir, "ididit", "ididit.db")))

	// 2. Initialize
	t.Log("Initializing CLI...")
	out := runCmd(t, cliPath, cleanEnv, "init")
	expect(t, out, "Initialized ididit storage at:")

	// 3. Build a small tree
	expect(t, runCmd(t, cliPath, cleanEnv, "category", "add", "Health"), "Added category 2: Health")
	expect(t, runCmd(t, cliPath, cleanEnv, "goal", "add", "Jogging", "--category", "2"), "Added goal 1: Jogging")

	// 4. Details become tasks once the goal creates a task from each line
	runCmd(t, cliPath, cleanEnv, "goal", "toggle-lines", "1")
	out = runCmd(t, cliPath, cleanEnv, "goal", "details", "1", "--text", "Run 5k\n- easy pace\nStretch")
	expect(t, out, "(tasks: 2 added, 0 updated, 0 removed)")

	out = runCmd(t, cliPath, cleanEnv, "goal", "show", "1")
	expect(t, out, "Run 5k")
	expect(t, out, "easy pace")
	expect(t, out, "Stretch")

	// 5. Record a completion
	expect(t, runCmd(t, cliPath, cleanEnv, "task", "done", "1"), "Task 1 done at")
	expect(t, runCmd(t, cliPath, cleanEnv, "task", "list", "1"), "done 1 times")

	// 6. Backups and diagnostics
	expect(t, runCmd(t, cliPath, cleanEnv, "backup", "create"), "✓ Backup created:")
	expect(t, runCmd(t, cliPath, cleanEnv, "doctor"), "All diagnostics passed!")

	// 7. Export and import into a JSON store
	exportPath := filepath.Join(tempDir, "export.yaml")
	expect(t, runCmd(t, cliPath, cleanEnv, "export", exportPath), "✓ Exported to")

	jsonStore := filepath.Join(tempDir, "copy.json")
	runCmd(t, cliPath, cleanEnv, "--config", jsonStore, "init")
	out = runCmd(t, cliPath, cleanEnv, "--config", jsonStore, "import", "data", exportPath)
	expect(t, out, "2 tasks, 1 completions")

	out = runCmd(t, cliPath, cleanEnv, "--config", jsonStore, "goal", "list")
	expect(t, out, "Jogging")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func expect(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}
