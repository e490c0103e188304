package routine

import "github.com/seraface/seraface-server/internal/domain/profile"

// ProductTypeCustom tags routines generated for a specific user, as opposed
// to predefined template routines.
const ProductTypeCustom = "custom"

// CreateRoutineRequest is the payload accepted by the routine service.
// FormData may be omitted when SessionID points at a stored intake form.
type CreateRoutineRequest struct {
	SessionID              string            `json:"session_id,omitempty"`
	FormData               *profile.FormData `json:"form_data,omitempty"`
	ProductRecommendations map[string]any    `json:"product_recommendations"`
}

// Step is one product's usage instructions within a routine. Every step
// emitted by the normalizer carries all fields with valid values.
type Step struct {
	Name         string          `json:"name"`
	Tag          string          `json:"tag"`
	Description  string          `json:"description"`
	Instructions []string        `json:"instructions"`
	Duration     int             `json:"duration"`
	WaitingTime  int             `json:"waiting_time"`
	Days         map[string]bool `json:"days"`
	Time         []string        `json:"time"`
}

// Routine is the normalized result returned to API consumers.
type Routine struct {
	ProductType string `json:"product_type"`
	Steps       []Step `json:"routine"`
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Usage timings the schema accepts.
var validTimes = map[string]struct{}{
	"morning": {},
	"night":   {},
}
