package profile

import (
	"fmt"
	"strings"

	apperrors "github.com/seraface/seraface-server/pkg/errors"
)

// Skin types accepted on the intake form.
var skinTypes = map[string]struct{}{
	"oily":        {},
	"dry":         {},
	"combination": {},
	"normal":      {},
	"sensitive":   {},
	"acne-prone":  {},
}

// Experience qualifiers for previously used products.
var experiences = map[string]struct{}{
	"good":    {},
	"bad":     {},
	"neutral": {},
}

// ProductExperience records how a previously used product worked out.
type ProductExperience struct {
	Product    string `json:"product"`
	Experience string `json:"experience"`
	Reason     string `json:"reason,omitempty"`
}

// FormData is the validated skincare intake form. Treated as immutable once
// it passes Validate; downstream services only read it.
type FormData struct {
	SkinType           []string            `json:"skin_type"`
	SkinConditions     []string            `json:"skin_conditions"`
	Budget             string              `json:"budget"`
	Allergies          []string            `json:"allergies"`
	ProductExperiences []ProductExperience `json:"product_experiences"`
	Goals              []string            `json:"goals"`
	CustomGoal         string              `json:"custom_goal,omitempty"`
}

// Validate checks enum fields and required values, naming the offending field.
func (f *FormData) Validate() error {
	if len(f.SkinType) == 0 {
		return apperrors.Wrap("invalid_input", "skin_type cannot be empty", nil)
	}
	for _, st := range f.SkinType {
		if _, ok := skinTypes[strings.ToLower(strings.TrimSpace(st))]; !ok {
			return apperrors.Wrap("invalid_input", fmt.Sprintf("unknown skin_type %q", st), nil)
		}
	}
	for _, exp := range f.ProductExperiences {
		if strings.TrimSpace(exp.Product) == "" {
			return apperrors.Wrap("invalid_input", "product_experiences entries need a product name", nil)
		}
		if _, ok := experiences[strings.ToLower(strings.TrimSpace(exp.Experience))]; !ok {
			return apperrors.Wrap("invalid_input", fmt.Sprintf("unknown product experience %q", exp.Experience), nil)
		}
	}
	return nil
}

// CombinedGoals returns the goal tags plus the free-text custom goal, if any.
func (f *FormData) CombinedGoals() []string {
	goals := make([]string, 0, len(f.Goals)+1)
	goals = append(goals, f.Goals...)
	if strings.TrimSpace(f.CustomGoal) != "" {
		goals = append(goals, f.CustomGoal)
	}
	return goals
}
