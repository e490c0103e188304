package routine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seraface/seraface-server/internal/domain/profile"
)

// promptInstructions and promptExample form the fixed part of the routine
// prompt. The model is sensitive to the few-shot formatting, so the example
// block is kept literal rather than generated.
const promptInstructions = `Instructions:
- For each product, create a step-by-step usage instruction.
- Provide a brief description (e.g., 'Gentle Hydrating Cleanser: Ideal for daily use, removes dirt and impurities').
- Include days for usage (e.g., 'monday', 'tuesday', 'wednesday', etc.).
- Specify the time(s) of use in an array (e.g., ["morning", "night"] if it is used twice a day).
- Provide the duration in seconds (e.g., 30 for cleanser).
- Provide the waiting time in seconds between products (e.g., 900 for waiting 15 minutes).
- Only provide the raw JSON without markdown or extra commentary.`

const promptExample = `Example:
"cleanser": {
    "name": "CeraVe Renewing SA Cleanser",
    "tag": "Gentle Hydrating Cleanser",
    "description": "Ideal for daily use, removes dirt and impurities",
    "instructions": [
        "Wet face with lukewarm water.",
        "Apply a small amount to face and neck.",
        "Massage in circular motions.",
        "Rinse thoroughly."
    ],
    "duration": 30,
    "waiting_time": 900,
    "days": {
        "monday": true,
        "tuesday": true,
        "wednesday": true,
        "thursday": true,
        "friday": true,
        "saturday": true,
        "sunday": true
    },
    "time": ["morning"]
},
"moisturizer": {
    "name": "Neutrogena Hydro Boost Water Gel",
    "tag": "Hyaluronic Acid Moisturizer",
    "description": "Hydrates and replenishes moisture",
    "instructions": [
        "Take a small amount and gently apply to face and neck.",
        "Massage in upward circular motions."
    ],
    "duration": 20,
    "waiting_time": 600,
    "days": {
        "monday": true,
        "tuesday": true,
        "wednesday": true,
        "thursday": true,
        "friday": true,
        "saturday": true,
        "sunday": true
    },
    "time": ["morning", "night"]
}`

// buildPrompt renders the full routine prompt. It is deterministic: the
// recommendations are serialized with sorted keys by encoding/json, so the
// same inputs always produce the same prompt text.
func buildPrompt(form *profile.FormData, sanitized map[string]any) string {
	products, err := json.MarshalIndent(sanitized, "", "  ")
	if err != nil {
		// Sanitized structures only hold JSON-encodable values; an error here
		// would mean the sanitizer missed a type, so fall back to an empty map.
		products = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are a skincare assistant creating a personalized skincare routine for a user.\n\n")
	b.WriteString("User Profile:\n")
	b.WriteString(renderProfile(form))
	b.WriteString("\n\nProducts:\n")
	b.Write(products)
	b.WriteString("\n\n")
	b.WriteString(promptInstructions)
	b.WriteString("\n\n")
	b.WriteString(promptExample)
	return b.String()
}

// renderProfile summarizes the intake form the way the model expects it.
func renderProfile(form *profile.FormData) string {
	experiences := make([]string, 0, len(form.ProductExperiences))
	for _, exp := range form.ProductExperiences {
		experiences = append(experiences, fmt.Sprintf("%s (%s)", exp.Product, exp.Experience))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- Skin Type: %s\n", strings.Join(form.SkinType, ", "))
	fmt.Fprintf(&b, "- Skin Conditions: %s\n", strings.Join(form.SkinConditions, ", "))
	fmt.Fprintf(&b, "- Allergies: %s\n", strings.Join(form.Allergies, ", "))
	fmt.Fprintf(&b, "- Product Experiences: [%s]\n", strings.Join(experiences, ", "))
	fmt.Fprintf(&b, "- Goals: %s", strings.Join(form.CombinedGoals(), ", "))
	return b.String()
}
