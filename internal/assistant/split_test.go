package assistant

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitReply_ShortTextUntouched(t *testing.T) {
	chunks := splitReply("hello", 1500)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello", chunks[0])
}

func TestSplitReply_BreaksOnLineBoundaries(t *testing.T) {
	lines := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		lines = append(lines, strings.Repeat("x", 100))
	}
	text := strings.Join(lines, "\n")

	chunks := splitReply(text, 500)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), 500, "chunk %d too long", i)
		if i < len(chunks)-1 {
			assert.True(t, strings.HasSuffix(c, contMarker), "chunk %d missing continuation marker", i)
		} else {
			assert.False(t, strings.HasSuffix(c, contMarker))
		}
	}

	// No line is split across chunks.
	var rejoined []string
	for i, c := range chunks {
		if i < len(chunks)-1 {
			c = strings.TrimSuffix(c, contMarker)
		}
		rejoined = append(rejoined, strings.Split(c, "\n")...)
	}
	assert.Equal(t, lines, rejoined)
}

// A hard cut inside a multibyte line must land on rune boundaries;
// Devanagari runs about three bytes per rune.
func TestSplitReply_HardCutKeepsValidUTF8(t *testing.T) {
	text := strings.Repeat("यह एक लंबा वाक्य है ", 80)
	chunks := splitReply(text, 500)
	require.Greater(t, len(chunks), 1)

	var b strings.Builder
	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d is not valid UTF-8", i)
		assert.LessOrEqual(t, len(c), 500)
		if i < len(chunks)-1 {
			c = strings.TrimSuffix(c, contMarker)
		}
		b.WriteString(c)
	}
	assert.Equal(t, text, b.String())
}

func TestSplitReply_HardCutsOversizedLine(t *testing.T) {
	text := strings.Repeat("y", 1200)
	chunks := splitReply(text, 500)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 500)
	}

	var b strings.Builder
	for i, c := range chunks {
		if i < len(chunks)-1 {
			c = strings.TrimSuffix(c, contMarker)
		}
		b.WriteString(c)
	}
	assert.Equal(t, text, b.String())
}
