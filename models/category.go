package models

import (
	"strings"
	"unicode"
)

// Category represents a menu section.
// The slug is derived from the name whenever the category is saved.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryDraft is the admin form for creating or editing a category.
// An empty ID means a new category.
type CategoryDraft struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (d CategoryDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return newValidationError("name", "Informe o nome da categoria.")
	}
	return nil
}

// Slugify lowercases name and replaces every run of whitespace with a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
