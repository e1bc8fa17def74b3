package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type fakeProgram struct {
	ran *bool
}

func (f fakeProgram) Run() (tea.Model, error) {
	*f.ran = true
	return nil, nil
}

func execRoot(t *testing.T, stdout io.Writer, args ...string) error {
	t.Helper()
	root := newRootCmd(stdout, io.Discard)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

// TestExportImportRoundTrip verifies behavior for the covered scenario.
func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "spann.db")
	outPath := filepath.Join(dir, "snapshot.json")

	var stdout bytes.Buffer
	if err := execRoot(t, &stdout, "--config", cfgPath, "--db", dbPath, "export", "--out", outPath); err != nil {
		t.Fatalf("export error = %v", err)
	}
	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if !strings.Contains(string(content), "spann.snapshot.v1") {
		t.Fatalf("snapshot missing version marker: %s", content)
	}

	otherDB := filepath.Join(dir, "other.db")
	stdout.Reset()
	if err := execRoot(t, &stdout, "--config", cfgPath, "--db", otherDB, "import", "--in", outPath); err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(stdout.String(), "imported board") {
		t.Fatalf("unexpected import output: %q", stdout.String())
	}
}

// TestExportToStdout verifies behavior for the covered scenario.
func TestExportToStdout(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	err := execRoot(t, &stdout,
		"--config", filepath.Join(dir, "config.toml"),
		"--db", filepath.Join(dir, "spann.db"),
		"export")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(stdout.String(), "spann.snapshot.v1") {
		t.Fatalf("stdout missing snapshot: %q", stdout.String())
	}
}

// TestImportRequiresInput verifies behavior for the covered scenario.
func TestImportRequiresInput(t *testing.T) {
	dir := t.TempDir()
	err := execRoot(t, io.Discard,
		"--config", filepath.Join(dir, "config.toml"),
		"--db", filepath.Join(dir, "spann.db"),
		"import")
	if err == nil {
		t.Fatal("import without --in should fail")
	}
}

// TestProjectsCommand verifies behavior for the covered scenario.
func TestProjectsCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "spann.db")

	var stdout bytes.Buffer
	if err := execRoot(t, &stdout, "--config", cfgPath, "--db", dbPath, "projects"); err != nil {
		t.Fatalf("projects error = %v", err)
	}
	if !strings.Contains(stdout.String(), "no boards yet") {
		t.Fatalf("empty store output = %q", stdout.String())
	}

	// Exporting seeds the default board; it should now be listed.
	if err := execRoot(t, io.Discard, "--config", cfgPath, "--db", dbPath, "export"); err != nil {
		t.Fatalf("export error = %v", err)
	}
	stdout.Reset()
	if err := execRoot(t, &stdout, "--config", cfgPath, "--db", dbPath, "projects"); err != nil {
		t.Fatalf("projects error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Board") {
		t.Fatalf("seeded board not listed: %q", stdout.String())
	}
}

// TestPathsCommand verifies behavior for the covered scenario.
func TestPathsCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	var stdout bytes.Buffer
	if err := execRoot(t, &stdout, "paths"); err != nil {
		t.Fatalf("paths error = %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"app: spann", "config: ", "data_dir: ", "db: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("paths output missing %q:\n%s", want, out)
		}
	}
}

// TestRootRunsTUIProgram verifies behavior for the covered scenario.
func TestRootRunsTUIProgram(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	ran := false
	original := programFactory
	programFactory = func(tea.Model) program {
		return fakeProgram{ran: &ran}
	}
	t.Cleanup(func() { programFactory = original })

	err := execRoot(t, io.Discard,
		"--config", filepath.Join(dir, "config.toml"),
		"--db", filepath.Join(dir, "spann.db"))
	if err != nil {
		t.Fatalf("root command error = %v", err)
	}
	if !ran {
		t.Fatal("tui program was not started")
	}
}

// TestParseBoolEnv verifies behavior for the covered scenario.
func TestParseBoolEnv(t *testing.T) {
	t.Setenv("SPANN_TEST_FLAG", "true")
	if v, ok := parseBoolEnv("SPANN_TEST_FLAG"); !ok || !v {
		t.Fatalf("parseBoolEnv = %v, %v", v, ok)
	}
	t.Setenv("SPANN_TEST_FLAG", "junk")
	if _, ok := parseBoolEnv("SPANN_TEST_FLAG"); ok {
		t.Fatal("junk value should not parse")
	}
	if _, ok := parseBoolEnv("SPANN_TEST_FLAG_UNSET"); ok {
		t.Fatal("unset value should not parse")
	}
}
