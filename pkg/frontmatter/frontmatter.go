// Package frontmatter renders and parses the TOML metadata block that is
// prepended to an article.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/mdmeta/pkg/article"

	"github.com/pelletier/go-toml/v2"
)

// Delimiter opens and closes the front matter block.
const Delimiter = "+++"

// ErrNoFrontMatter is returned when a document does not start with a
// delimited front matter block.
var ErrNoFrontMatter = errors.New("no front matter block")

// Render encodes m as a delimited TOML block ending in a newline.
func Render(m article.Metadata) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteString("\n")
	b.WriteString(buf.String())
	if !strings.HasSuffix(buf.String(), "\n") {
		b.WriteString("\n")
	}
	b.WriteString(Delimiter)
	b.WriteString("\n")
	return b.String(), nil
}

// Compose renders m and appends body after a blank line.
func Compose(m article.Metadata, body string) (string, error) {
	matter, err := Render(m)
	if err != nil {
		return "", err
	}
	return matter + "\n" + body, nil
}

// Split separates a document into its raw front matter and body. Delimiter
// lines may end in CRLF; the body is returned byte for byte, without the
// blank line written by Compose.
func Split(doc string) (matter string, body string, err error) {
	doc = strings.TrimPrefix(doc, "\ufeff")

	inner, ok := cutDelimiterLine(doc)
	if !ok {
		return "", "", ErrNoFrontMatter
	}
	for off := 0; off < len(inner); {
		if after, ok := cutDelimiterLine(inner[off:]); ok {
			matter = strings.ReplaceAll(inner[:off], "\r\n", "\n")
			return matter, trimLineBreak(after), nil
		}
		nl := strings.IndexByte(inner[off:], '\n')
		if nl < 0 {
			break
		}
		off += nl + 1
	}
	return "", "", fmt.Errorf("%w: missing closing %s", ErrNoFrontMatter, Delimiter)
}

// cutDelimiterLine reports whether s starts with a delimiter line and returns
// the text after its line ending.
func cutDelimiterLine(s string) (string, bool) {
	line, rest, _ := strings.Cut(s, "\n")
	if strings.TrimSuffix(line, "\r") != Delimiter {
		return "", false
	}
	return rest, true
}

func trimLineBreak(s string) string {
	if rest, ok := strings.CutPrefix(s, "\r\n"); ok {
		return rest
	}
	return strings.TrimPrefix(s, "\n")
}

// Parse decodes the front matter of doc and returns it with the body.
func Parse(doc string) (article.Metadata, string, error) {
	matter, body, err := Split(doc)
	if err != nil {
		return article.Metadata{}, "", err
	}

	var m article.Metadata
	dec := toml.NewDecoder(strings.NewReader(matter))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return article.Metadata{}, "", fmt.Errorf("decode front matter: %w", err)
	}
	return m, body, nil
}
