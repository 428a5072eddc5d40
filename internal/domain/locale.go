package domain

import (
	"regexp"
	"time"
)

// Locale selects the keyword tables used for parsing and classification.
// Tables are disjoint per language; a message is always resolved against
// the single table of the active conversation locale, never a merged one.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleHI Locale = "hi"
)

// ParseLocale maps a language code to a supported Locale, defaulting to English.
func ParseLocale(code string) Locale {
	if Locale(code) == LocaleHI {
		return LocaleHI
	}
	return LocaleEN
}

// DetectLocale guesses the language of one message by script: any
// Devanagari rune means Hindi, any Latin letter means English. A message
// with neither (digits, emoji) keeps current.
func DetectLocale(text string, current Locale) Locale {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return LocaleHI
		}
	}
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return LocaleEN
		}
	}
	return current
}

type localeTable struct {
	// relative matches "in N minutes/hours" style expressions.
	// Group 1 is the amount, group 2 the unit.
	relative *regexp.Regexp
	// clock matches a digit hour with an optional ":MM" and a meridiem
	// marker. Groups: 1 hour, 2 minute, 3 marker.
	clock *regexp.Regexp
	// pmWords are markers that push the hour into the afternoon.
	pmWords map[string]bool
	// hourUnits are relative units meaning hours; anything else is minutes.
	hourUnits map[string]bool

	tomorrow map[string]bool
	weekdays map[string]time.Weekday

	// stoplist tokens are dropped when computing the residual task.
	stoplist map[string]bool
	// pronouns rewrites first person to second person in the residual.
	pronouns map[string]string

	placeholderTask string
}

var localeTables = map[Locale]*localeTable{
	LocaleEN: {
		relative:  regexp.MustCompile(`(?i)\bin\s+(\d+)\s*(minutes?|mins?|min|hours?|hrs?|hr)\b`),
		clock:     regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`),
		pmWords:   set("pm"),
		hourUnits: set("hour", "hours", "hr", "hrs"),
		tomorrow:  set("tomorrow"),
		weekdays: map[string]time.Weekday{
			"monday":    time.Monday,
			"tuesday":   time.Tuesday,
			"wednesday": time.Wednesday,
			"thursday":  time.Thursday,
			"friday":    time.Friday,
			"saturday":  time.Saturday,
			"sunday":    time.Sunday,
		},
		stoplist: set(
			"remind", "reminder", "me", "to", "at", "on", "please",
			"tomorrow", "today", "next",
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		),
		pronouns: map[string]string{
			"i":      "you",
			"i'm":    "you're",
			"i'll":   "you'll",
			"i've":   "you've",
			"my":     "your",
			"mine":   "yours",
			"myself": "yourself",
		},
		placeholderTask: "your reminder",
	},
	LocaleHI: {
		relative:  regexp.MustCompile(`(\d+)\s*(मिनट|घंटे|घंटा)\s*(?:में|बाद)`),
		clock:     regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(बजे)`),
		pmWords:   set("बजे"),
		hourUnits: set("घंटे", "घंटा"),
		tomorrow:  set("कल", "kal"),
		weekdays: map[string]time.Weekday{
			"सोमवार":   time.Monday,
			"मंगलवार":  time.Tuesday,
			"बुधवार":   time.Wednesday,
			"गुरुवार":  time.Thursday,
			"शुक्रवार": time.Friday,
			"शनिवार":   time.Saturday,
			"रविवार":   time.Sunday,
		},
		stoplist: set(
			"याद", "दिलाना", "दिलाओ", "रिमाइंडर", "मुझे", "को", "पर", "कृपया",
			"कल", "आज",
			"सोमवार", "मंगलवार", "बुधवार", "गुरुवार", "शुक्रवार", "शनिवार", "रविवार",
		),
		pronouns: map[string]string{
			"मैं":  "आप",
			"मेरा": "आपका",
			"मेरी": "आपकी",
			"मेरे": "आपके",
		},
		placeholderTask: "आपका रिमाइंडर",
	},
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func (l Locale) table() *localeTable {
	if t, ok := localeTables[l]; ok {
		return t
	}
	return localeTables[LocaleEN]
}
