package transcript

import (
	"fmt"
	"strings"
)

// Truncate shortens a transcript to approximate a time-based cutoff.
//
// The cut is a linear interpolation: the word index is taken proportional to
// cutoffSeconds/durationSeconds, then trimmed back to the nearest
// sentence-ending punctuation if one falls within the final 10% of the cut
// text. This is deliberately an approximation, not a speech alignment.
//
// A cutoff at or beyond the episode duration returns the transcript
// unchanged; a cutoff at or before zero returns at most the first three
// sentences.
func Truncate(text string, cutoffSeconds, durationSeconds int) string {
	if cutoffSeconds >= durationSeconds {
		return text
	}

	if cutoffSeconds <= 0 {
		sentences := SplitSentences(text)
		if len(sentences) > 3 {
			sentences = sentences[:3]
		}
		return strings.TrimSpace(strings.Join(sentences, " "))
	}

	fraction := float64(cutoffSeconds) / float64(durationSeconds)
	words := strings.Fields(text)
	cutoffIndex := int(float64(len(words)) * fraction)
	truncated := strings.Join(words[:cutoffIndex], " ")

	// Prefer ending on a sentence boundary when one is close to the cut.
	lastEnd := -1
	for _, p := range []string{".", "!", "?"} {
		if idx := strings.LastIndex(truncated, p); idx > lastEnd {
			lastEnd = idx
		}
	}
	if lastEnd > int(float64(len(truncated))*0.9) {
		truncated = truncated[:lastEnd+1]
	}

	return strings.TrimSpace(truncated)
}

// ValidateCutoff checks that a proposed cutoff timestamp is usable for the
// given episode duration. It returns a non-empty message describing the
// problem, or "" when the cutoff is acceptable.
func ValidateCutoff(cutoffSeconds, durationSeconds int) string {
	if cutoffSeconds < 0 {
		return "cutoff time cannot be negative"
	}
	if cutoffSeconds > durationSeconds {
		return "cutoff time cannot exceed episode duration"
	}
	if durationSeconds > 0 && float64(cutoffSeconds) < float64(durationSeconds)*0.05 {
		return fmt.Sprintf("cutoff at %s is very early in the episode", FormatTimestamp(cutoffSeconds))
	}
	return ""
}
