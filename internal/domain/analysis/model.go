package analysis

// SkinAnalysis is the structured assessment the model produces for a face
// image. Sub-objects are pointers so omitted sections stay distinguishable
// from empty ones.
type SkinAnalysis struct {
	RednessIrritation     string                `json:"redness_irritation,omitempty"`
	AcneBreakouts         *AcneBreakouts        `json:"acne_breakouts,omitempty"`
	BlackheadsWhiteheads  *PresenceObservation  `json:"blackheads_whiteheads,omitempty"`
	OilinessShine         *LeveledObservation   `json:"oiliness_shine,omitempty"`
	DrynessFlaking        *PresenceObservation  `json:"dryness_flaking,omitempty"`
	UnevenSkinTone        string                `json:"uneven_skin_tone,omitempty"`
	DarkSpotsScars        *DarkSpotsScars       `json:"dark_spots_scars,omitempty"`
	PoresSize             *LeveledObservation   `json:"pores_size,omitempty"`
	HormonalAcneSigns     string                `json:"hormonal_acne_signs,omitempty"`
	StressRelatedFlareups string                `json:"stress_related_flareups,omitempty"`
	DehydratedSkinSigns   string                `json:"dehydrated_skin_signs,omitempty"`
	FineLinesWrinkles     *FineLinesObservation `json:"fine_lines_wrinkles,omitempty"`
	SkinElasticity        string                `json:"skin_elasticity,omitempty"`
}

// AcneBreakouts grades acne severity with an estimated lesion count.
type AcneBreakouts struct {
	Severity      string   `json:"severity,omitempty"`
	CountEstimate int      `json:"count_estimate,omitempty"`
	Location      []string `json:"location,omitempty"`
}

// PresenceObservation is a yes/no finding with affected areas.
type PresenceObservation struct {
	Presence bool     `json:"presence"`
	Location []string `json:"location,omitempty"`
}

// LeveledObservation is a graded finding with affected areas.
type LeveledObservation struct {
	Level    string   `json:"level,omitempty"`
	Location []string `json:"location,omitempty"`
}

// DarkSpotsScars carries a free-text summary alongside the presence flag.
type DarkSpotsScars struct {
	Presence    bool   `json:"presence"`
	Description string `json:"description,omitempty"`
}

// FineLinesObservation mirrors PresenceObservation but the model labels the
// area list "areas" for this finding.
type FineLinesObservation struct {
	Presence bool     `json:"presence"`
	Areas    []string `json:"areas,omitempty"`
}

// FaceAnalysisResponse is returned by the analyze endpoint.
type FaceAnalysisResponse struct {
	Message  string       `json:"message"`
	AIOutput SkinAnalysis `json:"ai_output"`
}
