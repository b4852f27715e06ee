package domain

import (
	"encoding/json"
	"strings"
)

// Recipe is a titled entry with description and ingredient text.
// Identity is ID; the store assigns it on creation.
type Recipe struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Ingredients IngredientList `json:"ingredients"`
	PrepTime    *int           `json:"prep_time,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append(IngredientList(nil), r.Ingredients...)
	}
	if r.PrepTime != nil {
		v := *r.PrepTime
		out.PrepTime = &v
	}
	return out
}

// IngredientList accepts either a JSON array of strings or a single string
// ("pasta, eggs, cheese" or one ingredient per line).
type IngredientList []string

// ParseIngredients splits free text on newlines and commas, dropping blanks.
func ParseIngredients(s string) IngredientList {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	out := make(IngredientList, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (l *IngredientList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*l = ParseIngredients(text)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = IngredientList(items).Normalize()
	return nil
}

// Normalize trims every entry and drops the blank ones.
func (l IngredientList) Normalize() IngredientList {
	out := make(IngredientList, 0, len(l))
	for _, item := range l {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Text is the searchable form of the list.
func (l IngredientList) Text() string {
	return strings.Join(l, ", ")
}
