package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_EN(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"Remind me to call mom at 5 PM", IntentReminder},
		{"My goal today is to write my essay", IntentGoal},
		{"all done", IntentCompletion},
		{"done", IntentCompletion},
		{"Recipe for paneer", IntentRecipe},
		{"Enable morning briefing", IntentBriefing},
		{"What's my schedule", IntentSchedule},
		{"hello", IntentGreeting},
		{"help", IntentHelp},
		{"Your name is Jarvis", IntentSetName},
		{"I'll call you Friday", IntentSetName},
		{"what is the weather", IntentUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.text, LocaleEN), tc.text)
	}
}

// Declaration order decides ties: an earlier intent wins even when a later
// trigger also appears in the message.
func TestClassify_Precedence(t *testing.T) {
	assert.Equal(t, IntentReminder, Classify("remind me to get it done at 5 pm", LocaleEN))
	assert.Equal(t, IntentGoal, Classify("my goal is done for today", LocaleEN))
	assert.Equal(t, IntentSetName, Classify("your name is Remy, remind me later", LocaleEN))
}

func TestClassify_HI(t *testing.T) {
	assert.Equal(t, IntentReminder, Classify("5 बजे याद दिलाना", LocaleHI))
	assert.Equal(t, IntentGoal, Classify("मेरा लक्ष्य निबंध लिखना है", LocaleHI))
	assert.Equal(t, IntentCompletion, Classify("हो गया", LocaleHI))
	assert.Equal(t, IntentGreeting, Classify("नमस्ते", LocaleHI))
	assert.Equal(t, IntentUnknown, Classify("kuch bhi", LocaleHI))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleHI, ParseLocale("hi"))
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, LocaleEN, ParseLocale("fr"))
}

func TestDetectLocale(t *testing.T) {
	assert.Equal(t, LocaleHI, DetectLocale("5 बजे याद दिलाना", LocaleEN))
	assert.Equal(t, LocaleEN, DetectLocale("remind me at 5 pm", LocaleHI))
	// Mixed script: Devanagari wins.
	assert.Equal(t, LocaleHI, DetectLocale("ok मेरा लक्ष्य", LocaleEN))
	// No letters at all keeps the current language.
	assert.Equal(t, LocaleHI, DetectLocale("👍 123", LocaleHI))
	assert.Equal(t, LocaleEN, DetectLocale("", LocaleEN))
}
