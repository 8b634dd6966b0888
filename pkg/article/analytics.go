package article

import (
	"strings"
	"time"
)

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 250

// ComputeAnalytics counts the words of content and estimates its reading
// time. It never talks to a model.
func ComputeAnalytics(content string, now time.Time) Analytics {
	words := uint64(len(strings.Fields(content)))
	seconds := words * 60 / WordsPerMinute
	return Analytics{
		CreatedAt:            DateOf(now),
		LengthInWords:        words,
		ReadingTimeInMinutes: seconds / 60,
	}
}
