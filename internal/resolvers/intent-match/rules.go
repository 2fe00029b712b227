package intentmatch

// Intent is a member of the closed intent catalog.
type Intent string

const (
	IntentNone            Intent = ""
	IntentPricingInquiry  Intent = "pricing_inquiry"
	IntentShippingInquiry Intent = "shipping_inquiry"
	IntentReturnPolicy    Intent = "return_policy"
	IntentGratitude       Intent = "gratitude"
	IntentGreeting        Intent = "greeting"
)

// Rule maps keywords to an intent. Keywords are matched as lowercase
// substrings of the query, without word boundaries.
type Rule struct {
	Intent   Intent
	Keywords []string
}

// DefaultRules is the catalog in priority order. Greeting comes last so a
// question that opens with "hello" still reaches the more specific intents.
func DefaultRules() []Rule {
	return []Rule{
		{
			Intent:   IntentPricingInquiry,
			Keywords: []string{"price", "pricing", "how much", "cost", "कीमत", "दाम"},
		},
		{
			Intent:   IntentShippingInquiry,
			Keywords: []string{"shipping", "delivery", "deliver", "dispatch", "courier"},
		},
		{
			Intent:   IntentReturnPolicy,
			Keywords: []string{"return policy", "refund", "exchange", "वापसी"},
		},
		{
			Intent:   IntentGratitude,
			Keywords: []string{"thank you", "thanks", "dhanyavad", "shukriya", "धन्यवाद"},
		},
		{
			Intent:   IntentGreeting,
			Keywords: []string{"hello", "namaste", "good morning", "good evening", "hey there", "नमस्ते"},
		},
	}
}
