package scout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNameFilterCaseSensitivity(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		ignoreCase bool
		entry      string
		expected   bool
	}{
		{"exact case matches", "*.txt", false, "a.txt", true},
		{"different case misses", "*.txt", false, "b.TXT", false},
		{"fold matches lower", "*.txt", true, "a.txt", true},
		{"fold matches upper", "*.txt", true, "b.TXT", true},
		{"fold upper pattern", "*.TXT", true, "a.txt", true},
		{"question mark", "?.txt", false, "a.txt", true},
		{"character class", "[ab].txt", false, "b.txt", true},
		{"class miss", "[ab].txt", false, "c.txt", false},
		{"base name only", "*.go", false, "src/main.go", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := NewNameFilter(test.pattern, test.ignoreCase)
			if err != nil {
				t.Fatalf("NewNameFilter(%q) failed: %v", test.pattern, err)
			}
			entry := Entry{Path: filepath.FromSlash(test.entry), Depth: 1, Type: TypeRegular}
			if got := f.Matches(entry); got != test.expected {
				t.Errorf("Pattern %q against %q: expected %v, got %v", test.pattern, test.entry, test.expected, got)
			}
		})
	}
}

func TestNameFilterInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"", "[abc", "a["} {
		if _, err := NewNameFilter(pattern, false); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("Pattern %q: expected ErrInvalidPattern, got %v", pattern, err)
		}
	}
}

func TestNameFilterUnicodeNormalization(t *testing.T) {
	// "é" composed in the pattern, decomposed in the name.
	f, err := NewNameFilter("café.txt", false)
	if err != nil {
		t.Fatalf("NewNameFilter failed: %v", err)
	}
	entry := Entry{Path: "café.txt", Type: TypeRegular}
	if !f.Matches(entry) {
		t.Error("Expected decomposed name to match composed pattern")
	}
}

func TestMultiNameFilter(t *testing.T) {
	entry := func(name string) Entry {
		return Entry{Path: name, Depth: 1, Type: TypeRegular}
	}

	tests := []struct {
		name     string
		patterns []string
		mode     CombineMode
		path     string
		expected bool
	}{
		{"any first hit", []string{"*.go", "*.txt"}, MatchAny, "main.go", true},
		{"any second hit", []string{"*.go", "*.txt"}, MatchAny, "notes.txt", true},
		{"any miss", []string{"*.go", "*.txt"}, MatchAny, "data.bin", false},
		{"all hit", []string{"*.txt", "a*"}, MatchAll, "a.txt", true},
		{"all partial miss", []string{"*.txt", "a*"}, MatchAll, "b.txt", false},
		{"empty list matches", nil, MatchAny, "anything", true},
		{"empty list all mode", nil, MatchAll, "anything", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := NewMultiNameFilter(test.patterns, false, test.mode)
			if err != nil {
				t.Fatalf("NewMultiNameFilter failed: %v", err)
			}
			if got := f.Matches(entry(test.path)); got != test.expected {
				t.Errorf("Patterns %v against %q: expected %v, got %v", test.patterns, test.path, test.expected, got)
			}
		})
	}
}

func TestMultiNameFilterRejectsBadPattern(t *testing.T) {
	// Construction fails up front, before any matching happens.
	if _, err := NewMultiNameFilter([]string{"*.go", ""}, false, MatchAny); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Expected ErrInvalidPattern for empty pattern in list, got %v", err)
	}
	if _, err := NewMultiNameFilter([]string{"[", "*.go"}, false, MatchAll); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Expected ErrInvalidPattern for malformed pattern in list, got %v", err)
	}
}

func TestTypeFilter(t *testing.T) {
	tests := []struct {
		code    string
		keeps   EntryType
		rejects EntryType
	}{
		{TypeCodeFile, TypeRegular, TypeDirectory},
		{TypeCodeDir, TypeDirectory, TypeRegular},
		{TypeCodeSymlink, TypeSymlink, TypeRegular},
	}

	for _, test := range tests {
		f, err := NewTypeFilter(test.code)
		if err != nil {
			t.Fatalf("NewTypeFilter(%q) failed: %v", test.code, err)
		}
		if !f.Matches(Entry{Path: "x", Type: test.keeps}) {
			t.Errorf("Code %q: expected %s to match", test.code, test.keeps)
		}
		if f.Matches(Entry{Path: "x", Type: test.rejects}) {
			t.Errorf("Code %q: expected %s to be rejected", test.code, test.rejects)
		}
	}
}

func TestTypeFilterInvalidCode(t *testing.T) {
	for _, code := range []string{"", "x", "file", "F"} {
		if _, err := NewTypeFilter(code); !errors.Is(err, ErrInvalidFileType) {
			t.Errorf("Code %q: expected ErrInvalidFileType, got %v", code, err)
		}
	}
}

func TestPathFormatFilterNeverRejects(t *testing.T) {
	for _, format := range []PathFormat{FormatAbsolute, FormatRelative} {
		f := NewPathFormatFilter(format)
		for _, typ := range []EntryType{TypeRegular, TypeDirectory, TypeSymlink, TypeOther} {
			if !f.Matches(Entry{Path: "x", Type: typ}) {
				t.Errorf("Format filter rejected %s entry", typ)
			}
		}
	}
}

func TestSizeFilter(t *testing.T) {
	tmpDir := t.TempDir()
	small := filepath.Join(tmpDir, "small.txt")
	large := filepath.Join(tmpDir, "large.txt")
	if err := os.WriteFile(small, make([]byte, 10), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.WriteFile(large, make([]byte, 4096), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name     string
		min, max int64
		path     string
		expected bool
	}{
		{"inside bounds", 1, 100, small, true},
		{"below min", 100, -1, small, false},
		{"above max", -1, 100, large, false},
		{"min only", 1000, -1, large, true},
		{"unbounded", -1, -1, large, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewSizeFilter(test.min, test.max)
			entry := Entry{Path: test.path, Depth: 1, Type: TypeRegular}
			if got := f.Matches(entry); got != test.expected {
				t.Errorf("Bounds [%d, %d] against %s: expected %v, got %v", test.min, test.max, filepath.Base(test.path), test.expected, got)
			}
		})
	}

	// Directories pass size bounds regardless.
	f := NewSizeFilter(1<<30, -1)
	if !f.Matches(Entry{Path: tmpDir, Depth: 1, Type: TypeDirectory}) {
		t.Error("Expected directory to pass size filter")
	}

	// A vanished file does not match.
	if f.Matches(Entry{Path: filepath.Join(tmpDir, "gone.txt"), Depth: 1, Type: TypeRegular}) {
		t.Error("Expected missing file to be rejected")
	}
}

func TestTimeFilter(t *testing.T) {
	tmpDir := t.TempDir()
	old := filepath.Join(tmpDir, "old.txt")
	recent := filepath.Join(tmpDir, "recent.txt")
	for _, p := range []string{old, recent} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	oldTime := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, oldTime, oldTime); err != nil {
		t.Fatalf("Failed to set file time: %v", err)
	}
	cutoff := time.Now().Add(-24 * time.Hour)

	after := NewTimeFilter(cutoff, time.Time{})
	if after.Matches(Entry{Path: old, Type: TypeRegular}) {
		t.Error("Expected old file to be rejected by after bound")
	}
	if !after.Matches(Entry{Path: recent, Type: TypeRegular}) {
		t.Error("Expected recent file to pass after bound")
	}

	before := NewTimeFilter(time.Time{}, cutoff)
	if !before.Matches(Entry{Path: old, Type: TypeRegular}) {
		t.Error("Expected old file to pass before bound")
	}
	if before.Matches(Entry{Path: recent, Type: TypeRegular}) {
		t.Error("Expected recent file to be rejected by before bound")
	}
}

func TestFilterDescriptions(t *testing.T) {
	name, _ := NewNameFilter("*.go", false)
	iname, _ := NewNameFilter("*.go", true)
	multi, _ := NewMultiNameFilter([]string{"*.go", "*.txt"}, false, MatchAny)
	typ, _ := NewTypeFilter(TypeCodeDir)

	tests := []struct {
		filter   Filter
		expected string
	}{
		{name, "name(*.go)"},
		{iname, "iname(*.go)"},
		{multi, "names(*.go or *.txt)"},
		{typ, "type(d)"},
		{NewPathFormatFilter(FormatRelative), "format(relative)"},
		{NewPathFormatFilter(FormatAbsolute), "format(absolute)"},
		{NewSizeFilter(0, 100), "size(0..100)"},
	}

	for _, test := range tests {
		if got := test.filter.Describe(); got != test.expected {
			t.Errorf("Expected description %q, got %q", test.expected, got)
		}
	}
}

func TestEntryTypeString(t *testing.T) {
	tests := []struct {
		typ      EntryType
		expected string
	}{
		{TypeRegular, "regular"},
		{TypeDirectory, "directory"},
		{TypeSymlink, "symlink"},
		{TypeOther, "other"},
		{EntryType(42), "other"},
	}

	for _, test := range tests {
		if got := test.typ.String(); got != test.expected {
			t.Errorf("Expected %q, got %q", test.expected, got)
		}
	}
}
