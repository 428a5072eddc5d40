package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	// ErrNoTime means the text contained no recognizable time expression.
	// Callers surface it as a clarification prompt, not a failure.
	ErrNoTime = errors.New("no time expression found")
)

// When is the outcome of parsing a time expression out of free text.
type When struct {
	// At is the resolved fire instant, in now's location.
	At time.Time
	// Relative is true when the expression was a duration ("in 30 minutes")
	// rather than a clock time. Relative results are in the future by
	// construction and never get the next-day rollover.
	Relative bool
	// Task is the residual text with time and connective tokens stripped
	// and first-person pronouns rewritten to second person.
	Task string
}

// ParseWhen extracts a time expression from text and resolves it against now.
// now carries the recipient's timezone; all date math stays in now.Location().
//
// A relative duration wins over an absolute clock time found in the same
// text. Absolute times resolve to today unless a "tomorrow" keyword or a
// weekday name advances the date; an absolute instant that is not after now
// rolls forward one day, but only when no explicit qualifier already moved it.
func ParseWhen(text string, now time.Time, loc Locale) (When, error) {
	t := loc.table()

	relSpan := t.relative.FindStringSubmatchIndex(text)
	clockSpan := t.clock.FindStringSubmatchIndex(text)

	switch {
	case relSpan != nil:
		amount, err := strconv.Atoi(text[relSpan[2]:relSpan[3]])
		if err != nil || amount <= 0 {
			// Overflowed or zero amounts would fire immediately; refuse
			// them like any other unparseable expression.
			return When{}, ErrNoTime
		}
		unit := strings.ToLower(text[relSpan[4]:relSpan[5]])
		d := time.Duration(amount) * time.Minute
		if t.hourUnits[unit] {
			d = time.Duration(amount) * time.Hour
		}
		return When{
			At:       now.Add(d),
			Relative: true,
			Task:     residualTask(text, t, relSpan, clockSpan),
		}, nil

	case clockSpan != nil:
		hour, _ := strconv.Atoi(text[clockSpan[2]:clockSpan[3]])
		minute := 0
		if clockSpan[4] >= 0 {
			minute, _ = strconv.Atoi(text[clockSpan[4]:clockSpan[5]])
		}
		marker := strings.ToLower(text[clockSpan[6]:clockSpan[7]])
		// Hours outside 1..12 are accepted as given and normalized by
		// time.Date; a known looseness, not corrected here.
		if t.pmWords[marker] {
			if hour != 12 {
				hour += 12
			}
		} else if hour == 12 {
			hour = 0
		}

		tokens := tokenize(text)
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		qualified := false
		if hasToken(tokens, t.tomorrow) {
			at = at.AddDate(0, 0, 1)
			qualified = true
		} else if wd, ok := findWeekday(tokens, t.weekdays); ok {
			days := int(wd-at.Weekday()+7) % 7
			if days == 0 {
				// Naming today's weekday always means next week.
				days = 7
			}
			at = at.AddDate(0, 0, days)
			qualified = true
		}
		if !qualified && !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		return When{
			At:   at,
			Task: residualTask(text, t, relSpan, clockSpan),
		}, nil
	}

	return When{}, ErrNoTime
}

// residualTask strips the matched time spans and stoplist tokens from text,
// collapses whitespace and rewrites pronouns. Removal is token-based, never
// substring-based: dropping "am" or "in" must not eat letters inside words.
func residualTask(text string, t *localeTable, spans ...[]int) string {
	var b strings.Builder
	prev := 0
	cuts := make([][2]int, 0, len(spans))
	for _, s := range spans {
		if s != nil {
			cuts = append(cuts, [2]int{s[0], s[1]})
		}
	}
	// Spans come from independent regexes; keep byte order.
	for i := 0; i < len(cuts); i++ {
		for j := i + 1; j < len(cuts); j++ {
			if cuts[j][0] < cuts[i][0] {
				cuts[i], cuts[j] = cuts[j], cuts[i]
			}
		}
	}
	for _, c := range cuts {
		if c[0] >= prev {
			b.WriteString(text[prev:c[0]])
			b.WriteByte(' ')
			prev = c[1]
		}
	}
	b.WriteString(text[prev:])

	var out []string
	for _, tok := range tokenize(b.String()) {
		low := strings.ToLower(tok)
		if t.stoplist[low] {
			continue
		}
		if repl, ok := t.pronouns[low]; ok {
			tok = repl
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return t.placeholderTask
	}
	return strings.Join(out, " ")
}

// tokenize splits text into word tokens on unicode word boundaries.
// Apostrophes stay inside words ("i'll"); a digit/letter transition starts
// a new token ("9am" -> "9", "am").
func tokenize(text string) []string {
	var tokens []string
	var cur []rune
	var curDigit bool

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, strings.Trim(string(cur), "'"))
			cur = cur[:0]
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			if len(cur) > 0 && !curDigit {
				flush()
			}
			curDigit = true
			cur = append(cur, r)
		case unicode.IsLetter(r) || r == '\'':
			if len(cur) > 0 && curDigit {
				flush()
			}
			curDigit = false
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func hasToken(tokens []string, words map[string]bool) bool {
	for _, tok := range tokens {
		if words[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}

func findWeekday(tokens []string, weekdays map[string]time.Weekday) (time.Weekday, bool) {
	for _, tok := range tokens {
		if wd, ok := weekdays[strings.ToLower(tok)]; ok {
			return wd, true
		}
	}
	return 0, false
}
