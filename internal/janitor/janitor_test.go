package janitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	old := touch(t, dir, "COMPARE_AAA_BBB_old.png", now.Add(-3*time.Hour))
	fresh := touch(t, dir, "COMPARE_AAA_BBB_new.png", now.Add(-10*time.Minute))

	j := New(dir, time.Hour, time.Minute)
	removed, err := j.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expired file survived the sweep")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file removed: %v", err)
	}
}

func TestSweepSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	sub := filepath.Join(dir, "keep")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	past := now.Add(-48 * time.Hour)
	if err := os.Chtimes(sub, past, past); err != nil {
		t.Fatal(err)
	}

	j := New(dir, time.Hour, time.Minute)
	if _, err := j.Sweep(now); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if _, err := os.Stat(sub); err != nil {
		t.Errorf("directory removed: %v", err)
	}
}

func TestSweepMissingDirIsNoop(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "nope"), time.Hour, time.Minute)
	removed, err := j.Sweep(time.Now())
	if err != nil || removed != 0 {
		t.Errorf("Sweep on missing dir = %d, %v", removed, err)
	}
}

func TestSweepIdempotent(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "a.png", now.Add(-2*time.Hour))

	j := New(dir, time.Hour, time.Minute)
	if removed, _ := j.Sweep(now); removed != 1 {
		t.Fatalf("first sweep removed %d", removed)
	}
	if removed, err := j.Sweep(now); err != nil || removed != 0 {
		t.Errorf("second sweep = %d, %v; want 0, nil", removed, err)
	}
}
