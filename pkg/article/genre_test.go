package article

import (
	"errors"
	"testing"
)

func TestResolveGenre(t *testing.T) {
	tests := []struct {
		input string
		want  Genre
	}{
		{input: "TECHNOLOGY", want: Technology},
		{input: "technology", want: Technology},
		{input: "  Art ", want: Art},
		{input: "OPINION", want: Opinion},
		{input: "sciencefiction", want: Opinion},
		{input: "", want: Opinion},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ResolveGenre(tc.input); got != tc.want {
				t.Fatalf("ResolveGenre(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseGenre_UnknownIsAnError(t *testing.T) {
	_, err := ParseGenre("sciencefiction")
	if !errors.Is(err, ErrUnknownGenre) {
		t.Fatalf("ParseGenre() error = %v, want ErrUnknownGenre", err)
	}
}

func TestGenre_TextRoundTrip(t *testing.T) {
	if len(Genres()) != 15 {
		t.Fatalf("expected 15 genres, got %d", len(Genres()))
	}
	for _, g := range Genres() {
		b, err := g.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) error = %v", int(g), err)
		}
		var back Genre
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", b, err)
		}
		if back != g {
			t.Fatalf("round trip %s -> %s", g, back)
		}
	}
	if _, err := Genre(99).MarshalText(); err == nil {
		t.Fatalf("MarshalText() should reject out-of-range genres")
	}
}
