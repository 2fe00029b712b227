package intentmatch

import (
	"context"
	"testing"

	"craft-assistant/internal/common/config"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestResolver(t *testing.T) *Resolver {
	cfg := LoadConfig(config.AssistantConfig{IntentResponses: config.DefaultIntentResponses})
	return NewResolver(cfg, logger.NewTestLogger(t))
}

func TestResolver_Match(t *testing.T) {
	r := createTestResolver(t)

	tests := []struct {
		query string
		want  Intent
	}{
		{"Hello there", IntentGreeting},
		{"NAMASTE", IntentGreeting},
		{"नमस्ते जी", IntentGreeting},
		{"What is the price of a tote bag?", IntentPricingInquiry},
		{"Hello, how much is the cushion cover?", IntentPricingInquiry},
		{"Do you offer delivery to Pune?", IntentShippingInquiry},
		{"Can I get a refund?", IntentReturnPolicy},
		{"thanks a lot", IntentGratitude},
		{"Who is the founder?", IntentNone},
		{"", IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Match(tt.query))
		})
	}
}

func TestResolver_MatchIsSubstringContainment(t *testing.T) {
	r := createTestResolver(t)

	// "cost" inside "costume" still triggers the pricing rule.
	assert.Equal(t, IntentPricingInquiry, r.Match("do you sell costumes"))
}

func TestResolver_FirstRuleWins(t *testing.T) {
	cfg := &Config{
		Rules: []Rule{
			{Intent: IntentGratitude, Keywords: []string{"THANKS"}},
			{Intent: IntentGreeting, Keywords: []string{"thanks"}},
		},
		Responses: map[string]string{"gratitude": "a", "greeting": "b"},
	}
	r := NewResolver(cfg, logger.NewNoOpLogger())

	assert.Equal(t, IntentGratitude, r.Match("thanks, hello"))
}

func TestResolver_Resolve(t *testing.T) {
	r := createTestResolver(t)
	q := models.NewQuery("Hello!")

	result, err := r.Resolve(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, config.DefaultIntentResponses["greeting"], result.Answer)
	assert.Equal(t, Name, result.Resolver)
	assert.Equal(t, models.StatusOK, result.Status)
	assert.Equal(t, q.ID, result.QueryID)
}

func TestResolver_DeclinesWithoutIntent(t *testing.T) {
	r := createTestResolver(t)

	result, err := r.Resolve(context.Background(), models.NewQuery("Tell me about your bamboo baskets"))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestResolver_MissingResponseIsNoIntent(t *testing.T) {
	cfg := LoadConfig(config.AssistantConfig{IntentResponses: map[string]string{
		"greeting":        "Hi!",
		"pricing_inquiry": "   ",
	}})
	r := NewResolver(cfg, logger.NewTestLogger(t))

	_, ok := r.Response(IntentPricingInquiry)
	assert.False(t, ok)
	_, ok = r.Response(IntentShippingInquiry)
	assert.False(t, ok)

	result, err := r.Resolve(context.Background(), models.NewQuery("what is the price"))
	require.NoError(t, err)
	assert.Nil(t, result)
}
