package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}

	// Allow overriding the binary via env var, default to building it into the temp dir
	tempDir := t.TempDir()
	cliPath := os.Getenv("HOURLOG_BIN")
	if cliPath == "" {
		cliPath = filepath.Join(tempDir, "hourlog")
		build := exec.Command("go", "build", "-o", cliPath, ".")
		if out, err := build.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, out)
		}
	}

	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "HOURLOG_") {
			env = append(env, e)
		}
	}
	env = append(env, fmt.Sprintf("HOME=%s", tempDir))

	storePath := filepath.Join(tempDir, "table.json")
	run := func(args ...string) string {
		t.Helper()
		return runCmd(t, cliPath, env, append([]string{"--store", storePath}, args...)...)
	}

	t.Log("Initializing store...")
	out := run("init")
	if !strings.Contains(out, "Initialized hourlog storage") {
		t.Errorf("unexpected init output: %s", out)
	}

	out = run("generate", "--range", "week", "--date", "2026-03-04")
	if !strings.Contains(out, "2026-03-01 to 2026-03-07") {
		t.Errorf("unexpected generate output: %s", out)
	}

	run("set", "2026-03-02", "9", "--color", "#ff0000", "--activity", "Job", "--category", "Work")
	run("set", "2026-03-02", "10", "--color", "#ff0000", "--activity", "Job", "--category", "Work")

	csvPath := filepath.Join(tempDir, "week.csv")
	run("export", "2026-03-02", "2026-03-02", "--out", csvPath)
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "2026-03-02,Mon,9:00,#ff0000,Job,Work") {
		t.Errorf("export missing the edited cell:\n%s", data)
	}

	// Import the export into a second store
	otherStore := filepath.Join(tempDir, "copy.json")
	runCmd(t, cliPath, env, "--store", otherStore, "init")
	out = runCmd(t, cliPath, env, "--store", otherStore, "import", csvPath)
	if !strings.Contains(out, "Imported 24 rows") {
		t.Errorf("unexpected import output: %s", out)
	}

	out = runCmd(t, cliPath, env, "--store", otherStore, "gantt", "2026-03-02", "2026-03-02")
	if !strings.Contains(out, "Job :Work_1, 2026-03-02T09:00, 2h") {
		t.Errorf("gantt output missing merged interval:\n%s", out)
	}

	out = run("stats", "2026-03-02", "2026-03-02")
	if !strings.Contains(out, "Work") {
		t.Errorf("stats output missing category:\n%s", out)
	}

	out = run("validate")
	if !strings.Contains(out, "No conflicts detected.") {
		t.Errorf("unexpected validate output:\n%s", out)
	}

	run("backup", "create")
	out = run("backup", "list")
	if !strings.Contains(out, "hourlog-") {
		t.Errorf("backup list missing backup:\n%s", out)
	}
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
