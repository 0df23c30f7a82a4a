package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 3, CountWords("one two three"))
	assert.Equal(t, 3, CountWords("  one\ttwo\nthree  "))
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("First one. Second one! Third one? Trailing fragment")
	assert.Len(t, sentences, 3)

	assert.Equal(t, []string{"no terminator at all"}, SplitSentences("no terminator at all"))
	assert.Nil(t, SplitSentences("   "))
}

func TestTargetWordCount(t *testing.T) {
	assert.Equal(t, 750, TargetWordCount(5, DefaultWordsPerMinute))
	assert.Equal(t, 150, TargetWordCount(1, DefaultWordsPerMinute))
}

func TestSpokenDuration_FloorsToWholeMinutes(t *testing.T) {
	// floor(760/150)*60 = 300
	assert.Equal(t, 300, SpokenDuration(760, DefaultWordsPerMinute))
	assert.Equal(t, 300, SpokenDuration(750, DefaultWordsPerMinute))
	assert.Equal(t, 240, SpokenDuration(749, DefaultWordsPerMinute))
	assert.Equal(t, 0, SpokenDuration(149, DefaultWordsPerMinute))
}

func TestIsWordCountAcceptable(t *testing.T) {
	// 760 vs 750 is a 1.3% deviation, well inside tolerance.
	assert.True(t, IsWordCountAcceptable(760, 750))
	assert.True(t, IsWordCountAcceptable(675, 750))
	assert.True(t, IsWordCountAcceptable(825, 750))
	assert.False(t, IsWordCountAcceptable(674, 750))
	assert.False(t, IsWordCountAcceptable(826, 750))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "0:45", FormatTimestamp(45))
	assert.Equal(t, "12:03", FormatTimestamp(723))
	assert.Equal(t, "1:00:01", FormatTimestamp(3601))
}

func TestParseTimestamp(t *testing.T) {
	assert.Equal(t, 723, ParseTimestamp("12:03"))
	assert.Equal(t, 3601, ParseTimestamp("1:00:01"))
	assert.Equal(t, 0, ParseTimestamp("garbage"))
}
