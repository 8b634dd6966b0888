package util

import "strings"

var inlineReplacer = strings.NewReplacer("\n", "", "\r", "", "\t", "")

// SanitizeInline removes line feeds, carriage returns and tabs so model output
// can be embedded inline in another prompt.
func SanitizeInline(value string) string {
	if value == "" {
		return value
	}

	return inlineReplacer.Replace(value)
}
