package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// recordingTB captures Fatalf instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
	runtime.Goexit()
}

func runGolden(name, output string) *recordingTB {
	tb := &recordingTB{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		AssertGolden(tb, name, output)
	}()
	<-done
	return tb
}

func writeGolden(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })
}

func TestRepoRootFindsModule(t *testing.T) {
	root := RepoRoot(t)
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("expected go.mod under %s: %v", root, err)
	}
}

func TestAssertGoldenMatchesExisting(t *testing.T) {
	t.Setenv("UPDATE_GOLDEN", "")
	name := "testutil-golden-check.txt"
	writeGolden(t, name, "first\n")
	AssertGolden(t, name, "first\n")
	if tb := runGolden(name, "second\n"); !tb.failed {
		t.Fatalf("expected mismatch to fail")
	}
}

func TestAssertGoldenMissingFileFails(t *testing.T) {
	t.Setenv("UPDATE_GOLDEN", "")
	name := "testutil-golden-missing.txt"
	path := filepath.Join(RepoRoot(t), "testdata", name)
	os.Remove(path)
	tb := runGolden(name, "anything\n")
	if !tb.failed {
		t.Fatalf("expected missing golden to fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("missing golden must not be created, stat err=%v", err)
	}
}

func TestAssertGoldenUpdateRewrites(t *testing.T) {
	name := "testutil-golden-update.txt"
	writeGolden(t, name, "old\n")
	t.Setenv("UPDATE_GOLDEN", "1")
	AssertGolden(t, name, "new\n")
	data, err := os.ReadFile(filepath.Join(RepoRoot(t), "testdata", name))
	if err != nil || string(data) != "new\n" {
		t.Fatalf("expected rewritten golden, got %q (%v)", data, err)
	}
}
