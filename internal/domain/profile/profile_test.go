package profile

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/seraface/seraface-server/pkg/errors"
)

func TestValidateAcceptsKnownValues(t *testing.T) {
	form := FormData{
		SkinType:       []string{"Oily", " sensitive "},
		SkinConditions: []string{"redness"},
		Budget:         "medium",
		ProductExperiences: []ProductExperience{
			{Product: "CeraVe Cleanser", Experience: "Good"},
			{Product: "Retinol Serum", Experience: "neutral", Reason: "no visible change"},
		},
		Goals: []string{"clear skin"},
	}
	require.NoError(t, form.Validate())
}

func TestValidateRejectsEmptySkinType(t *testing.T) {
	err := (&FormData{}).Validate()
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Contains(t, err.Error(), "skin_type")
}

func TestValidateRejectsUnknownSkinType(t *testing.T) {
	err := (&FormData{SkinType: []string{"metallic"}}).Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "metallic")
}

func TestValidateRejectsBadExperience(t *testing.T) {
	form := FormData{
		SkinType:           []string{"dry"},
		ProductExperiences: []ProductExperience{{Product: "Toner", Experience: "fantastic"}},
	}
	err := form.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "fantastic")

	form.ProductExperiences = []ProductExperience{{Product: "  ", Experience: "good"}}
	require.Error(t, form.Validate())
}

func TestCombinedGoals(t *testing.T) {
	form := FormData{Goals: []string{"clear skin", "hydration"}}
	require.Equal(t, []string{"clear skin", "hydration"}, form.CombinedGoals())

	form.CustomGoal = "reduce redness before the wedding"
	require.Equal(t, []string{"clear skin", "hydration", "reduce redness before the wedding"}, form.CombinedGoals())

	form.CustomGoal = "   "
	require.Len(t, form.CombinedGoals(), 2)
}
