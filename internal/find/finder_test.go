package scout

import (
	"context"
	"reflect"
	"testing"
)

func TestFinderPipeline(t *testing.T) {
	tmpDir := t.TempDir()
	mkTree(t, tmpDir, []string{
		"a.txt",
		"b.md",
		"notes.txt/keep.txt",
	})

	nameFilter, err := NewNameFilter("*.txt", false)
	if err != nil {
		t.Fatalf("NewNameFilter failed: %v", err)
	}
	typeFilter, err := NewTypeFilter(TypeCodeFile)
	if err != nil {
		t.Fatalf("NewTypeFilter failed: %v", err)
	}

	// Every filter must match: the notes.txt directory passes the name
	// test but fails the type test.
	finder := NewFinder(testOptions(), nameFilter, typeFilter)
	entries, err := finder.Find(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	got := relPaths(t, tmpDir, entries)
	want := []string{"a.txt", "notes.txt/keep.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFinderMultiNamePipeline(t *testing.T) {
	tmpDir := t.TempDir()
	mkTree(t, tmpDir, []string{
		"main.go",
		"readme.md",
		"data.bin",
	})

	multi, err := NewMultiNameFilter([]string{"*.go", "*.md"}, false, MatchAny)
	if err != nil {
		t.Fatalf("NewMultiNameFilter failed: %v", err)
	}

	entries, err := Find(context.Background(), tmpDir, testOptions(), multi)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	got := relPaths(t, tmpDir, entries)
	want := []string{"main.go", "readme.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFindAll(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	mkTree(t, rootA, []string{"a1.txt", "a2.txt"})
	mkTree(t, rootB, []string{"b1.txt"})

	finder := NewFinder(testOptions())
	entries, err := finder.FindAll(context.Background(), rootA, rootB)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries across roots, got %d", len(entries))
	}

	// Matches arrive in root argument order.
	gotA := relPaths(t, rootA, entries[:2])
	if !reflect.DeepEqual(gotA, []string{"a1.txt", "a2.txt"}) {
		t.Errorf("Expected rootA entries first, got %v", gotA)
	}
	gotB := relPaths(t, rootB, entries[2:])
	if !reflect.DeepEqual(gotB, []string{"b1.txt"}) {
		t.Errorf("Expected rootB entries last, got %v", gotB)
	}
}

func TestFindAllStopsOnError(t *testing.T) {
	rootA := t.TempDir()
	mkTree(t, rootA, []string{"a.txt"})

	finder := NewFinder(testOptions())
	if _, err := finder.FindAll(context.Background(), rootA, "/no/such/root"); err == nil {
		t.Error("Expected error for a missing root")
	}
}

func TestFinderReuse(t *testing.T) {
	tmpDir := t.TempDir()
	mkTree(t, tmpDir, []string{"x.txt", "sub/y.txt"})

	finder := NewFinder(testOptions())
	for i := 0; i < 3; i++ {
		entries, err := finder.Find(context.Background(), tmpDir)
		if err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
		if len(entries) != 3 {
			t.Errorf("Run %d: expected 3 entries, got %d", i, len(entries))
		}
	}
}
