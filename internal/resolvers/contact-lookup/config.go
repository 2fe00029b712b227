package contactlookup

import (
	"fmt"

	"craft-assistant/internal/common/config"
	"craft-assistant/internal/models"

	"github.com/go-playground/validator/v10"
)

// GenericKeyword asks for the whole directory.
const GenericKeyword = "contact"

// Directory is the immutable contact list, checked in field order.
type Directory struct {
	Founder        models.ContactEntry
	GeneralManager models.ContactEntry
}

var validate = validator.New()

// LoadDirectory converts and validates the configured contacts.
func LoadDirectory(cfg config.ContactsConfig) (*Directory, error) {
	dir := &Directory{
		Founder:        toEntry(cfg.Founder),
		GeneralManager: toEntry(cfg.GeneralManager),
	}
	if err := validate.Struct(dir); err != nil {
		return nil, fmt.Errorf("invalid contact directory: %w", err)
	}
	return dir, nil
}

func toEntry(c config.ContactConfig) models.ContactEntry {
	keywords := make([]string, len(c.Keywords))
	copy(keywords, c.Keywords)
	return models.ContactEntry{
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Role:     c.Role,
		Icon:     c.Icon,
		Keywords: keywords,
	}
}
