package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchWrite(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")
	if err := os.WriteFile(logPath, []byte("10.0.0.1 GET /index.html 200\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{logPath})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Append a line; the watcher should report the path as given.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("10.0.0.2 GET /secret.html 404\n")
	f.Close()

	select {
	case ev := <-w.Events:
		if ev.Path != logPath {
			t.Errorf("expected path %q, got %q", logPath, ev.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for write event")
	}

	cancel()
	time.Sleep(100 * time.Millisecond)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing.log")})
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPathsSorted(t *testing.T) {
	dir := t.TempDir()
	var given []string
	for _, name := range []string{"b.log", "a.log"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
		given = append(given, p)
	}

	w, err := New(given)
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	paths := w.Paths()
	if len(paths) != 2 || paths[0] != given[1] || paths[1] != given[0] {
		t.Errorf("expected sorted paths, got %q", paths)
	}
}
