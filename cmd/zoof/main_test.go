package main

import (
	"os"
	"path/filepath"
	"testing"
)

// writeScript writes text to a temp .zf file and returns its path.
func writeScript(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.zf")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func TestRunFile_SuccessExitsZero(t *testing.T) {
	path := writeScript(t, "print 1 + 1\n")
	code, err := runFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != exitSuccess {
		t.Errorf("exit code = %d, want %d", code, exitSuccess)
	}
}

func TestRunFile_SyntaxErrorExits65(t *testing.T) {
	path := writeScript(t, "if 1 <\nprint 2\n")
	code, err := runFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != exitDataErr {
		t.Errorf("exit code = %d, want %d", code, exitDataErr)
	}
}

func TestRunFile_RuntimeErrorExits70(t *testing.T) {
	path := writeScript(t, "if 1 do\n    print 'x'\n")
	code, err := runFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != exitRuntime {
		t.Errorf("exit code = %d, want %d", code, exitRuntime)
	}
}

func TestRunFile_MissingFileIsUsageError(t *testing.T) {
	code, err := runFile(filepath.Join(t.TempDir(), "missing.zf"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRun_TooManyArgsIsUsageError(t *testing.T) {
	code := run([]string{"a.zf", "b.zf"})
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func BenchmarkRunFile_HeavyLoop(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, "loop.zf")
	text := "sum = 0\nfor i in 0:1000 do\n    sum = sum + i\nprint sum\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		b.Fatalf("writing script: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runFile(path)
	}
}
