package contactlookup

import (
	"context"
	"fmt"
	"strings"

	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"
)

const Name = "contact"

// Resolver answers "who is / how do I reach" questions from the directory.
type Resolver struct {
	directory *Directory
	logger    logger.Logger
}

func NewResolver(directory *Directory, log logger.Logger) *Resolver {
	return &Resolver{
		directory: directory,
		logger:    log.With(map[string]interface{}{"resolver": Name}),
	}
}

func (r *Resolver) Name() string {
	return Name
}

// Lookup returns the formatted answer for text, or "" when no keyword hits.
// Founder keywords win over general manager keywords, which win over the
// generic contact keyword.
func (r *Resolver) Lookup(text string) string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, r.directory.Founder.Keywords):
		return formatEntry(r.directory.Founder)
	case containsAny(lower, r.directory.GeneralManager.Keywords):
		return formatEntry(r.directory.GeneralManager)
	case strings.Contains(lower, GenericKeyword):
		return r.formatSummary()
	}
	return ""
}

func (r *Resolver) Resolve(_ context.Context, q *models.Query) (*models.ResolutionResult, error) {
	answer := r.Lookup(q.Text)
	if answer == "" {
		return nil, nil
	}

	r.logger.Debug("contact matched", map[string]interface{}{"queryId": q.ID})

	return &models.ResolutionResult{
		Answer:   answer,
		Resolver: Name,
		Status:   models.StatusOK,
		QueryID:  q.ID,
	}, nil
}

func formatEntry(c models.ContactEntry) string {
	return fmt.Sprintf("%s *%s*: %s\n📧 Email: %s\n📞 Phone: %s", c.Icon, c.Role, c.Name, c.Email, c.Phone)
}

func (r *Resolver) formatSummary() string {
	f, gm := r.directory.Founder, r.directory.GeneralManager
	return fmt.Sprintf("📞 *Founder*: %s | *GM*: %s\n📧 *Emails*: %s, %s", f.Phone, gm.Phone, f.Email, gm.Email)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
