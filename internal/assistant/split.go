package assistant

import (
	"strings"
	"unicode/utf8"
)

// replyLimit is the per-message character budget for outbound sends.
const replyLimit = 1500

// contMarker is appended to every chunk except the last.
const contMarker = " …"

// splitReply breaks a long reply into chunks of at most limit characters,
// splitting only on line boundaries. A single line longer than the limit is
// cut hard as a last resort.
func splitReply(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	budget := limit - len(contMarker)
	var chunks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > budget {
			flush()
			// Back up to a rune boundary; a byte-offset cut would split a
			// multibyte rune and send invalid UTF-8.
			cut := budget
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = budget
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		need := len(line)
		if cur.Len() > 0 {
			need += cur.Len() + 1
		}
		if need > budget {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
	}
	flush()

	for i := 0; i < len(chunks)-1; i++ {
		chunks[i] += contMarker
	}
	return chunks
}
