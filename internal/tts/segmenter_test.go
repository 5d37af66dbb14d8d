package tts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("   \n\n"))
	assert.Empty(t, Split("\n\t \n"))
}

func TestSplitShortLine(t *testing.T) {
	chunks := Split("こんにちは。")
	require.Len(t, chunks, 1)
	assert.Equal(t, "こんにちは。", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 6, chunks[0].OriginalLength)
	assert.NotEmpty(t, chunks[0].ID)
}

func TestSplitLineExactlyAtLimit(t *testing.T) {
	line := strings.Repeat("あ", MaxChunkRunes)
	chunks := Split(line)
	require.Len(t, chunks, 1)
	assert.Equal(t, MaxChunkRunes, len([]rune(chunks[0].Text)))
}

func TestSplitLongLineAtSentenceBoundary(t *testing.T) {
	// 300 runes of repeated 10-rune sentences; a 。 sits right at the
	// 200-rune boundary, so the cut lands on it.
	line := strings.Repeat("おはようございます。", 30)
	chunks := Split(line)
	require.Len(t, chunks, 2)
	assert.Equal(t, 200, len([]rune(chunks[0].Text)))
	assert.Equal(t, 100, len([]rune(chunks[1].Text)))
	assert.True(t, strings.HasSuffix(chunks[0].Text, "。"))
	assert.Equal(t, line, chunks[0].Text+chunks[1].Text)
}

func TestSplitPrefersEarlierTerminatorInWindow(t *testing.T) {
	// Only terminator inside the backward window is at rune 160.
	line := strings.Repeat("あ", 160) + "。" + strings.Repeat("い", 139)
	chunks := Split(line)
	require.Len(t, chunks, 2)
	assert.Equal(t, 161, len([]rune(chunks[0].Text)))
	assert.True(t, strings.HasSuffix(chunks[0].Text, "。"))
	assert.Equal(t, 139, len([]rune(chunks[1].Text)))
}

func TestSplitCutsAtEveryTerminatorKind(t *testing.T) {
	cases := []struct {
		name       string
		terminator string
	}{
		{"full stop", "。"},
		{"full-width period", "．"},
		{"exclamation", "！"},
		{"question", "？"},
		{"full-width space", "　"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// The only terminator in the window sits at rune 170.
			line := strings.Repeat("あ", 170) + tc.terminator + strings.Repeat("い", 129)
			chunks := Split(line)
			require.Len(t, chunks, 2)
			assert.Equal(t, 171, len([]rune(chunks[0].Text)))
			assert.True(t, strings.HasSuffix(chunks[0].Text, tc.terminator))
			assert.Equal(t, 129, len([]rune(chunks[1].Text)))
		})
	}
}

func TestSplitForcesCutWithoutTerminator(t *testing.T) {
	line := strings.Repeat("あ", 450)
	chunks := Split(line)
	require.Len(t, chunks, 3)
	assert.Equal(t, 200, len([]rune(chunks[0].Text)))
	assert.Equal(t, 200, len([]rune(chunks[1].Text)))
	assert.Equal(t, 50, len([]rune(chunks[2].Text)))
}

func TestSplitReconstructionAndBounds(t *testing.T) {
	input := "短い行です。\n\n" + strings.Repeat("長い行が続きます。", 60) + "\n最後の行。"
	chunks := Split(input)
	require.NotEmpty(t, chunks)

	var rebuilt strings.Builder
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index, "indexes must be sequential across the whole input")
		assert.LessOrEqual(t, len([]rune(chunk.Text)), MaxChunkRunes)
		rebuilt.WriteString(chunk.Text)
	}

	normalized := strings.Join([]string{"短い行です。", strings.Repeat("長い行が続きます。", 60), "最後の行。"}, "")
	assert.Equal(t, normalized, rebuilt.String())
}

func TestSplitIndexesSpanLines(t *testing.T) {
	chunks := Split("一行目。\n二行目。\n三行目。")
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
	}
}
