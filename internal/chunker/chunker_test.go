package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/futig/docqa/internal/entity"
)

func TestChunk_WorkedExample(t *testing.T) {
	chunks, err := Chunk("AAAA BBBB CCCC DDDD", 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"AAAA BBBB", "BBBB CCCC", "CCCC DDDD"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk %d: expected %q, got %q", i, w, chunks[i].Text)
		}
		if chunks[i].Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, chunks[i].Index)
		}
	}
}

func TestChunk_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		chunks, err := Chunk(text, 4, 1)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if len(chunks) != 0 {
			t.Fatalf("expected 0 chunks for %q, got %d", text, len(chunks))
		}
	}
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	chunks, err := Chunk("  one two three  ", 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "one two three" {
		t.Fatalf("expected trimmed text, got %q", chunks[0].Text)
	}
	if chunks[0].TokenCount() != 3 {
		t.Fatalf("expected 3 tokens, got %d", chunks[0].TokenCount())
	}
}

func TestChunk_InvalidConfig(t *testing.T) {
	cases := []struct {
		name          string
		size, overlap int
	}{
		{"overlap equals size", 3, 3},
		{"overlap exceeds size", 3, 5},
		{"zero size", 0, 0},
		{"negative overlap", 3, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, text := range []string{"", "a b c d e f"} {
				_, err := Chunk(text, tc.size, tc.overlap)
				if !errors.Is(err, entity.ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig for text %q, got %v", text, err)
				}
			}
		})
	}
}

func TestChunk_CoverageAndOverlap(t *testing.T) {
	words := make([]string, 37)
	for i := range words {
		words[i] = strings.Repeat(string(rune('a'+i%26)), i%4+1)
	}
	text := strings.Join(words, " \n ")
	tokens := Tokenize(text)

	for size := 1; size <= 9; size++ {
		for overlap := 0; overlap < size; overlap++ {
			chunks, err := Chunk(text, size, overlap)
			if err != nil {
				t.Fatalf("size=%d overlap=%d: unexpected error: %v", size, overlap, err)
			}

			if chunks[0].StartToken != 0 {
				t.Fatalf("size=%d overlap=%d: first chunk starts at %d", size, overlap, chunks[0].StartToken)
			}
			if last := chunks[len(chunks)-1]; last.EndToken != len(tokens) {
				t.Fatalf("size=%d overlap=%d: last chunk ends at %d, want %d", size, overlap, last.EndToken, len(tokens))
			}

			for i, c := range chunks {
				if c.TokenCount() > size || c.TokenCount() == 0 {
					t.Fatalf("size=%d overlap=%d: chunk %d has %d tokens", size, overlap, i, c.TokenCount())
				}
				if c.Text != text[c.StartChar:c.EndChar] {
					t.Fatalf("size=%d overlap=%d: chunk %d text is not a substring at its offsets", size, overlap, i)
				}
				if i == 0 {
					continue
				}
				prev := chunks[i-1]
				if c.StartToken > prev.EndToken {
					t.Fatalf("size=%d overlap=%d: gap between chunk %d and %d", size, overlap, i-1, i)
				}
				if got := prev.EndToken - c.StartToken; got != overlap {
					t.Fatalf("size=%d overlap=%d: chunks %d/%d overlap by %d", size, overlap, i-1, i, got)
				}
			}
		}
	}
}

func TestTokenize_Offsets(t *testing.T) {
	text := "héllo  wörld\tx"
	tokens := Tokenize(text)
	want := []string{"héllo", "wörld", "x"}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tok := range tokens {
		if got := text[tok.Start:tok.End]; got != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got)
		}
	}
}
