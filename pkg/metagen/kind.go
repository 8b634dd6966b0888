// Package metagen turns article text into metadata fields by prompting a
// completion service. Each field is produced independently: a free-form
// answer is generated first and then coerced into a single-field JSON object.
package metagen

import (
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/mdmeta/pkg/article"
)

// FieldKind identifies one of the generated metadata fields.
type FieldKind int

const (
	Title FieldKind = iota
	Description
	Genre
	Keywords
)

// fieldSpec holds everything the prompts need to know about a field.
type fieldSpec struct {
	name       string
	guideline  string
	limitation string
	list       bool
	examples   []any
}

var fieldSpecs = [...]fieldSpec{
	Title: {
		name:       "title",
		guideline:  "What should be the title of this article?",
		limitation: "The title should be at most 10 words.",
		examples: []any{
			"The Fall of the Roman Empire",
			"The Economic Impact of Climate Change",
			"The Relationship Between Art and Politics",
		},
	},
	Description: {
		name:       "description",
		guideline:  "Provide a brief summary of this article.",
		limitation: "The summary should be less than 5 sentences in length and be written in a single paragraph.",
		examples: []any{
			descriptionExamples[0],
			descriptionExamples[1],
			descriptionExamples[2],
		},
	},
	Genre: {
		name:      "genre",
		guideline: "What genre does this article belong to?",
		limitation: fmt.Sprintf(
			"The genre should be a single word and be one of these available options: %s",
			strings.Join(article.GenreNames(), ", "),
		),
		examples: []any{
			article.Art.String(),
			article.Opinion.String(),
			article.Technology.String(),
		},
	},
	Keywords: {
		name:       "keywords",
		guideline:  "What are some keywords that describe this article?",
		limitation: "The keywords should be a comma separated list.",
		list:       true,
		examples: []any{
			[]string{"Roman Empire", "History"},
			[]string{"Climate Change", "Economy"},
			[]string{"Art", "Politics"},
		},
	},
}

// Kinds returns the field kinds in pipeline order.
func Kinds() []FieldKind {
	return []FieldKind{Title, Description, Genre, Keywords}
}

func (k FieldKind) valid() bool {
	return k >= 0 && int(k) < len(fieldSpecs)
}

func (k FieldKind) spec() fieldSpec {
	return fieldSpecs[k]
}

func (k FieldKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
	return fieldSpecs[k].name
}

// Guideline is the question the Generator asks for this field.
func (k FieldKind) Guideline() string {
	return k.spec().guideline
}

// Limitation encodes the formatting constraints of this field in prose.
func (k FieldKind) Limitation() string {
	return k.spec().limitation
}

// IsList reports whether the field decodes to a list of strings.
func (k FieldKind) IsList() bool {
	return k.spec().list
}
