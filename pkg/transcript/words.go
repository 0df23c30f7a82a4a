package transcript

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// DefaultWordsPerMinute is the assumed speaking rate used to convert between
// word counts and spoken durations. It is a policy value; callers that need a
// different rate pass their own.
const DefaultWordsPerMinute = 150

var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+`)

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SplitSentences splits text into sentences, where a sentence is a run of
// text ending in '.', '!' or '?'. Text without any terminator is returned as
// a single sentence.
func SplitSentences(text string) []string {
	sentences := sentenceRegex.FindAllString(text, -1)
	if sentences == nil {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	return sentences
}

// TargetWordCount converts a target duration in minutes to a word count at
// the given speaking rate.
func TargetWordCount(targetMinutes, wordsPerMinute int) int {
	return targetMinutes * wordsPerMinute
}

// EstimateSpeakingDuration estimates how many seconds it takes to speak
// wordCount words at the given rate, rounding up.
func EstimateSpeakingDuration(wordCount, wordsPerMinute int) int {
	return int(math.Ceil(float64(wordCount) / float64(wordsPerMinute) * 60))
}

// SpokenDuration converts a word count to whole spoken minutes expressed in
// seconds, rounding down. This is the figure reported as a summary's actual
// duration.
func SpokenDuration(wordCount, wordsPerMinute int) int {
	return wordCount / wordsPerMinute * 60
}

// IsWordCountAcceptable reports whether actual is within ±10% of target.
func IsWordCountAcceptable(actual, target int) bool {
	if target == 0 {
		return actual == 0
	}
	deviation := math.Abs(float64(actual)-float64(target)) / float64(target)
	return deviation <= 0.10
}

// FormatTimestamp renders seconds as H:MM:SS, or M:SS when under an hour.
func FormatTimestamp(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// ParseTimestamp converts H:MM:SS or M:SS to seconds. Returns 0 for
// unrecognized input.
func ParseTimestamp(ts string) int {
	parts := strings.Split(ts, ":")
	toInt := func(s string) int {
		var n int
		fmt.Sscanf(s, "%d", &n)
		return n
	}

	switch len(parts) {
	case 3:
		return toInt(parts[0])*3600 + toInt(parts[1])*60 + toInt(parts[2])
	case 2:
		return toInt(parts[0])*60 + toInt(parts[1])
	}
	return 0
}
