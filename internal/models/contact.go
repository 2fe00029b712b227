package models

// ContactEntry is one person in the static contact directory.
type ContactEntry struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required"`
	Role     string   `json:"role" validate:"required"`
	Icon     string   `json:"icon"`
	Keywords []string `json:"keywords" validate:"required,min=1,dive,required"`
}
