package assistant

import (
	"fmt"
	"strings"

	"github.com/rbhasinn/personal-assist/internal/domain"
)

// A small canned recipe table; no network lookups.
type recipe struct {
	name        string
	ingredients string
	method      string
	duration    string
}

var recipeTable = []struct {
	keywords []string
	byLocale map[domain.Locale]recipe
}{
	{
		keywords: []string{"paneer", "पनीर"},
		byLocale: map[domain.Locale]recipe{
			domain.LocaleEN: {
				name:        "Paneer Butter Masala",
				ingredients: "• 250g paneer\n• 2 onions\n• 3 tomatoes\n• 1/2 cup cream\n• Spices",
				method:      "1. Make onion-tomato paste\n2. Sauté spices\n3. Add paste\n4. Mix cream and paneer\n5. Cook for 5 mins",
				duration:    "30 minutes",
			},
			domain.LocaleHI: {
				name:        "पनीर बटर मसाला",
				ingredients: "• 250g पनीर\n• 2 प्याज\n• 3 टमाटर\n• 1/2 कप क्रीम\n• मसाले",
				method:      "1. प्याज-टमाटर का पेस्ट बनाएं\n2. मसाले भूनें\n3. पेस्ट डालें\n4. क्रीम और पनीर मिलाएं\n5. 5 मिनट पकाएं",
				duration:    "30 मिनट",
			},
		},
	},
	{
		keywords: []string{"dal", "दाल"},
		byLocale: map[domain.Locale]recipe{
			domain.LocaleEN: {
				name:        "Dal Tadka",
				ingredients: "• 1 cup toor dal\n• 1 onion\n• 2 tomatoes\n• Tempering spices",
				method:      "1. Boil dal\n2. Prepare tempering\n3. Sauté onion-tomato\n4. Mix dal\n5. Cook for 10 mins",
				duration:    "45 minutes",
			},
			domain.LocaleHI: {
				name:        "दाल तड़का",
				ingredients: "• 1 कप अरहर दाल\n• 1 प्याज\n• 2 टमाटर\n• तड़का मसाले",
				method:      "1. दाल उबालें\n2. तड़का तैयार करें\n3. प्याज-टमाटर भूनें\n4. दाल मिलाएं\n5. 10 मिनट पकाएं",
				duration:    "45 मिनट",
			},
		},
	},
}

// findRecipe scans the table for a dish keyword in the message.
func findRecipe(text string, loc domain.Locale) (string, bool) {
	low := strings.ToLower(text)
	for _, entry := range recipeTable {
		for _, kw := range entry.keywords {
			if !strings.Contains(low, kw) {
				continue
			}
			r, ok := entry.byLocale[loc]
			if !ok {
				r = entry.byLocale[domain.LocaleEN]
			}
			if loc == domain.LocaleHI {
				return fmt.Sprintf("🍳 %s बनाने की विधि:\n\n📝 सामग्री:\n%s\n\n👨‍🍳 विधि:\n%s\n\n⏱️ समय: %s",
					r.name, r.ingredients, r.method, r.duration), true
			}
			return fmt.Sprintf("🍳 Recipe for %s:\n\n📝 Ingredients:\n%s\n\n👨‍🍳 Method:\n%s\n\n⏱️ Time: %s",
				r.name, r.ingredients, r.method, r.duration), true
		}
	}
	return "", false
}
