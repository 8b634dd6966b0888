package main

import (
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/mdmeta/internal/generate"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the front matter of a generated article",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	meta, body, err := generate.ReadArticle(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	row := func(label string, value any) {
		fmt.Fprintf(out, "%-14s%v\n", label+":", value)
	}
	row("Title", meta.Title)
	row("Description", meta.Description)
	row("Author", meta.Author)
	row("Slug", meta.Slug)
	row("Genre", meta.Interest.Genre)
	row("Keywords", strings.Join(meta.Interest.Keywords, ", "))
	row("Created", meta.Analytics.CreatedAt)
	row("Words", meta.Analytics.LengthInWords)
	row("Reading time", fmt.Sprintf("%d min", meta.Analytics.ReadingTimeInMinutes))
	row("Body", fmt.Sprintf("%d bytes", len(body)))
	return nil
}
