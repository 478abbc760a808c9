package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		top      int
		expected int
	}{
		{name: "Zero returns all", top: 0, expected: 5},
		{name: "Negative returns all", top: -1, expected: 5},
		{name: "Less than length", top: 3, expected: 3},
		{name: "Equal to length", top: 5, expected: 5},
		{name: "Greater than length", top: 10, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := limitTop(items, tt.top)
			if len(result) != tt.expected {
				t.Errorf("limitTop(items, %d) returned %d items, expected %d", tt.top, len(result), tt.expected)
			}
		})
	}
}

func TestOpenOutputWriter_Stdout(t *testing.T) {
	w, f, err := openOutputWriter("")
	if err != nil {
		t.Fatalf("openOutputWriter: %v", err)
	}
	if f != nil {
		t.Error("expected nil file for stdout")
	}
	if w != os.Stdout {
		t.Error("expected os.Stdout writer")
	}
}

func TestOpenOutputWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, f, err := openOutputWriter(path)
	if err != nil {
		t.Fatalf("openOutputWriter: %v", err)
	}
	if f == nil || w == nil {
		t.Fatal("expected file writer")
	}
	f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestJoinOrDash(t *testing.T) {
	if got := joinOrDash(nil); got != "-" {
		t.Errorf("joinOrDash(nil) = %q, expected %q", got, "-")
	}
	if got := joinOrDash([]string{"a", "b"}); got != "a,b" {
		t.Errorf("joinOrDash = %q, expected %q", got, "a,b")
	}
}
