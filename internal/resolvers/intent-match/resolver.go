package intentmatch

import (
	"context"
	"strings"

	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"
)

const Name = "intent"

// Resolver answers queries that hit a known intent with its canned response.
type Resolver struct {
	rules     []Rule
	responses map[string]string
	logger    logger.Logger
}

func NewResolver(config *Config, log logger.Logger) *Resolver {
	rules := make([]Rule, len(config.Rules))
	for i, r := range config.Rules {
		keywords := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			keywords[j] = strings.ToLower(k)
		}
		rules[i] = Rule{Intent: r.Intent, Keywords: keywords}
	}

	return &Resolver{
		rules:     rules,
		responses: config.Responses,
		logger:    log.With(map[string]interface{}{"resolver": Name}),
	}
}

func (r *Resolver) Name() string {
	return Name
}

// Match returns the intent of the first rule with a keyword contained in
// text, or IntentNone.
func (r *Resolver) Match(text string) Intent {
	lower := strings.ToLower(text)
	for _, rule := range r.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Intent
			}
		}
	}
	return IntentNone
}

// Response looks up the canned answer. A blank answer counts as missing.
func (r *Resolver) Response(intent Intent) (string, bool) {
	if intent == IntentNone {
		return "", false
	}
	text, ok := r.responses[string(intent)]
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func (r *Resolver) Resolve(_ context.Context, q *models.Query) (*models.ResolutionResult, error) {
	intent := r.Match(q.Text)
	answer, ok := r.Response(intent)
	if !ok {
		return nil, nil
	}

	r.logger.Debug("intent matched", map[string]interface{}{
		"queryId": q.ID,
		"intent":  string(intent),
	})

	return &models.ResolutionResult{
		Answer:   answer,
		Resolver: Name,
		Status:   models.StatusOK,
		QueryID:  q.ID,
	}, nil
}
