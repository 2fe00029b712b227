package config

import "strings"

const defaultDirective = "You are ONLY an AI assistant for Dhonk Craft, a sustainable clothing and craft brand in India. " +
	"Only answer questions related to Dhonk Craft: its founders, products, services, policies, or vision. " +
	"Founders: Divya Khandal (Creative Director), Dharmendra Khandal (CEO). Do NOT answer unrelated questions."

const secondaryDirective = "आप Dhonk Craft के लिए एक सहायक बॉट हैं। जब कोई हिंदी में सवाल पूछे, " +
	"तो आप साफ़ और सरल हिंदी में जवाब दें। Dhonk Craft एक भारतीय ब्रांड है " +
	"जो हस्तशिल्प और टिकाऊ कपड़ों के लिए जाना जाता है। आप केवल इससे जुड़े सवालों के जवाब देंगे।"

// DefaultIntentResponses are the canned answers used when the config file
// does not provide its own.
var DefaultIntentResponses = map[string]string{
	"greeting":         "🙏 Namaste! Welcome to Dhonk Craft. Ask me about our handmade products, orders or the people behind the brand.",
	"pricing_inquiry":  "💰 Our handcrafted products are priced by material and craft work. Please check the product page on our website for the current price.",
	"shipping_inquiry": "🚚 We ship across India. Orders are usually dispatched within 3-5 working days.",
	"return_policy":    "↩️ Unused products can be returned within 7 days of delivery. Reach out to us with your order details to start a return.",
	"gratitude":        "😊 You're welcome! Happy to help with anything else about Dhonk Craft.",
}

func applyAssistantDefaults(a *AssistantConfig) {
	if a.MaxSentences == 0 {
		a.MaxSentences = 3
	}

	if strings.TrimSpace(a.Directives.Default) == "" {
		a.Directives.Default = defaultDirective
	}
	if strings.TrimSpace(a.Directives.Secondary) == "" {
		a.Directives.Secondary = secondaryDirective
	}

	if a.IntentResponses == nil {
		a.IntentResponses = make(map[string]string, len(DefaultIntentResponses))
	}
	for k, v := range DefaultIntentResponses {
		if _, ok := a.IntentResponses[k]; !ok {
			a.IntentResponses[k] = v
		}
	}

	fillContact(&a.Contacts.Founder, ContactConfig{
		Name:     "Divya Khandal",
		Email:    "founder@dhonkcraft.example",
		Phone:    "+91-90000-00001",
		Role:     "Founder",
		Icon:     "👩‍💼",
		Keywords: []string{"founder", "divya"},
	})
	fillContact(&a.Contacts.GeneralManager, ContactConfig{
		Name:     "Mr. Maan Singh",
		Email:    "gm@dhonkcraft.example",
		Phone:    "+91-90000-00002",
		Role:     "General Manager",
		Icon:     "👨‍💼",
		Keywords: []string{"general manager", "maan singh", "gm"},
	})
}

func fillContact(c *ContactConfig, def ContactConfig) {
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Email == "" {
		c.Email = def.Email
	}
	if c.Phone == "" {
		c.Phone = def.Phone
	}
	if c.Role == "" {
		c.Role = def.Role
	}
	if c.Icon == "" {
		c.Icon = def.Icon
	}
	if len(c.Keywords) == 0 {
		c.Keywords = def.Keywords
	}
}
