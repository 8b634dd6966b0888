package article

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGenre is returned by ParseGenre for names outside the enumeration.
var ErrUnknownGenre = errors.New("unknown genre")

// Genre classifies an article. The zero value is News.
type Genre int

const (
	News Genre = iota
	Technology
	Health
	Sports
	Entertainment
	Business
	Science
	Education
	Lifestyle
	Travel
	Food
	Politics
	Opinion
	History
	Art
)

// DefaultGenre is used whenever a generated genre cannot be resolved.
const DefaultGenre = Opinion

var genreNames = [...]string{
	News:          "NEWS",
	Technology:    "TECHNOLOGY",
	Health:        "HEALTH",
	Sports:        "SPORTS",
	Entertainment: "ENTERTAINMENT",
	Business:      "BUSINESS",
	Science:       "SCIENCE",
	Education:     "EDUCATION",
	Lifestyle:     "LIFESTYLE",
	Travel:        "TRAVEL",
	Food:          "FOOD",
	Politics:      "POLITICS",
	Opinion:       "OPINION",
	History:       "HISTORY",
	Art:           "ART",
}

var genresByName = func() map[string]Genre {
	m := make(map[string]Genre, len(genreNames))
	for g, name := range genreNames {
		m[name] = Genre(g)
	}
	return m
}()

// Genres returns every genre in declaration order.
func Genres() []Genre {
	out := make([]Genre, len(genreNames))
	for i := range genreNames {
		out[i] = Genre(i)
	}
	return out
}

// GenreNames returns the canonical names of every genre in declaration order.
func GenreNames() []string {
	out := make([]string, len(genreNames))
	copy(out, genreNames[:])
	return out
}

func (g Genre) String() string {
	if g < 0 || int(g) >= len(genreNames) {
		return fmt.Sprintf("Genre(%d)", int(g))
	}
	return genreNames[g]
}

// ParseGenre looks up s case-insensitively. Unknown names are an error.
func ParseGenre(s string) (Genre, error) {
	g, ok := genresByName[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return DefaultGenre, fmt.Errorf("%w: %q", ErrUnknownGenre, s)
	}
	return g, nil
}

// ResolveGenre is ParseGenre with the DefaultGenre fallback: it never fails.
func ResolveGenre(s string) Genre {
	g, err := ParseGenre(s)
	if err != nil {
		return DefaultGenre
	}
	return g
}

func (g Genre) MarshalText() ([]byte, error) {
	if g < 0 || int(g) >= len(genreNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGenre, int(g))
	}
	return []byte(genreNames[g]), nil
}

func (g *Genre) UnmarshalText(b []byte) error {
	parsed, err := ParseGenre(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
