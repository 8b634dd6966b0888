package article

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const dateLayout = "2006-01-02"

// ErrEmptySlug is returned when a title has no characters a slug can keep.
var ErrEmptySlug = errors.New("title yields an empty slug")

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts YYYY-MM-DD. The zero Date, written as 0000-00-00,
// decodes back to the zero value.
func (d *Date) UnmarshalText(b []byte) error {
	if strings.TrimSpace(string(b)) == (Date{}).String() {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", b, err)
	}
	*d = DateOf(t)
	return nil
}

// Metadata is the front matter attached to an article.
type Metadata struct {
	Title       string    `toml:"title"`
	Description string    `toml:"description"`
	Author      string    `toml:"author"`
	Slug        string    `toml:"slug"`
	Analytics   Analytics `toml:"analytics"`
	Interest    Interest  `toml:"interest"`
}

// Analytics holds statistics computed from the article text itself.
type Analytics struct {
	CreatedAt            Date   `toml:"created_at"`
	LengthInWords        uint64 `toml:"length_in_words"`
	ReadingTimeInMinutes uint64 `toml:"reading_time_in_minutes"`
}

// Interest holds the classification fields used for discovery.
type Interest struct {
	Keywords        []string `toml:"keywords"`
	Genre           Genre    `toml:"genre"`
	RelatedArticles []string `toml:"related_articles"`
}

// Fields are the generated parts of Metadata.
type Fields struct {
	Title       string
	Description string
	Genre       Genre
	Keywords    []string
}

// NewMetadata merges generated fields with the author and analytics. The slug
// is derived from the title.
func NewMetadata(fields Fields, author string, analytics Analytics) Metadata {
	keywords := fields.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return Metadata{
		Title:       fields.Title,
		Description: fields.Description,
		Author:      author,
		Slug:        Slugify(fields.Title),
		Analytics:   analytics,
		Interest: Interest{
			Keywords:        keywords,
			Genre:           fields.Genre,
			RelatedArticles: []string{},
		},
	}
}

// Slugify lower-cases title and joins its words with hyphens.
func Slugify(title string) string {
	return slug.Make(title)
}

// CheckTitle reports ErrEmptySlug when title cannot name an output file.
func CheckTitle(title string) error {
	if Slugify(title) == "" {
		return fmt.Errorf("%w: %q", ErrEmptySlug, title)
	}
	return nil
}

// FileName is the output file name for the article.
func (m Metadata) FileName() string {
	return m.Slug + ".md"
}
