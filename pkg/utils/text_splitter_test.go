package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		wantLen   int
	}{
		{name: "short text stays whole", text: "hello", chunkSize: 100, overlap: 10, wantLen: 1},
		{name: "exact fit stays whole", text: strings.Repeat("a", 100), chunkSize: 100, overlap: 10, wantLen: 1},
		{name: "splits with overlap", text: strings.Repeat("a", 250), chunkSize: 100, overlap: 50, wantLen: 4},
		{name: "overlap larger than chunk falls back", text: strings.Repeat("a", 300), chunkSize: 100, overlap: 150, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(got) != tt.wantLen {
				t.Errorf("SplitText() produced %d chunks, want %d", len(got), tt.wantLen)
			}
			for i, chunk := range got {
				if len(chunk) > tt.chunkSize {
					t.Errorf("chunk %d has length %d, exceeds chunk size %d", i, len(chunk), tt.chunkSize)
				}
			}
		})
	}
}

func TestSplitTextOverlapPreservesBoundaries(t *testing.T) {
	text := "abcdefghij"
	got := SplitText(text, 4, 2)

	want := []string{"abcd", "cdef", "efgh", "ghij"}
	if len(got) != len(want) {
		t.Fatalf("SplitText() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}
