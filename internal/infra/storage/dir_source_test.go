package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSourceLoadsJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "week1.json", `[{"username":"ana","score":10,"tank":"T1"}, null]`)
	writeFile(t, dir, "week2.json", `[{"username":"ana","score":"22.5"}]`)
	writeFile(t, dir, "broken.json", `{"not": "a list"}`)
	writeFile(t, dir, "notes.txt", `ignored`)
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := NewDirSource(dir, nil).Gameweeks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 gameweeks, got %d: %v", len(got), got)
	}
	if len(got["week1"]) != 1 || got["week1"][0].Tank != "T1" {
		t.Fatalf("unexpected week1 %+v", got["week1"])
	}
	if float64(*got["week2"][0].Score) != 22.5 {
		t.Fatalf("unexpected week2 score %v", *got["week2"][0].Score)
	}
}

func TestDirSourceMissingDir(t *testing.T) {
	got, err := NewDirSource(filepath.Join(t.TempDir(), "nope"), nil).Gameweeks(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v, %v", got, err)
	}
}

func TestDirSourceHonorsContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "week1.json", `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDirSource(dir, nil).Gameweeks(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
