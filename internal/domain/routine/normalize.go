package routine

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category defaults applied to steps the model left incomplete.
const (
	defaultDuration    = 30
	defaultWaitingTime = 300
	defaultInstruction = "Apply as directed"
	defaultTime        = "morning"
)

// stepCollectionKeys are the alternate top-level keys models wrap the step
// collection in, tried in order before treating the whole object as the
// collection itself.
var stepCollectionKeys = []string{"routine", "skincare_routine"}

var titleCaser = cases.Title(language.English)

// normalizeSteps converts parsed model output into a list of complete Steps.
// It never fails: malformed entries are dropped and logged, missing fields
// are filled with category-derived defaults, and the iteration order of the
// model's own output is preserved.
func normalizeSteps(parsed any, logger *slog.Logger) []Step {
	if obj, ok := parsed.(*object); ok {
		for _, key := range stepCollectionKeys {
			nested, found := obj.get(key)
			if !found {
				continue
			}
			switch collection := nested.(type) {
			case *object:
				return normalizeCategories(collection, logger)
			case []any:
				return normalizeSequence(collection, logger)
			}
		}
		return normalizeCategories(obj, logger)
	}

	if seq, ok := parsed.([]any); ok {
		return normalizeSequence(seq, logger)
	}
	return normalizeSequence([]any{parsed}, logger)
}

// normalizeCategories handles the documented shape: category name → step data.
func normalizeCategories(collection *object, logger *slog.Logger) []Step {
	steps := make([]Step, 0, collection.len())
	for _, category := range collection.keys {
		raw, _ := collection.get(category)
		data, ok := raw.(*object)
		if !ok {
			logger.Warn("discarding step with non-object data", "category", category)
			continue
		}
		steps = append(steps, buildStep(category, data, len(steps)))
	}
	return steps
}

// normalizeSequence handles models that answer with a bare JSON array. Array
// entries carry no category labels, so positional ones are synthesized.
func normalizeSequence(seq []any, logger *slog.Logger) []Step {
	steps := make([]Step, 0, len(seq))
	for i, raw := range seq {
		data, ok := raw.(*object)
		if !ok {
			logger.Warn("discarding step with non-object data", "position", i)
			continue
		}
		steps = append(steps, buildStep(fmt.Sprintf("step_%d", i+1), data, len(steps)))
	}
	return steps
}

// buildStep fills the seven required fields. accepted is the number of steps
// already appended to the routine, which drives the "Step N" fallback name.
// A field that is present but of an unusable type counts as missing.
func buildStep(category string, data *object, accepted int) Step {
	label := strings.ReplaceAll(category, "_", " ")
	step := Step{
		Name:         fmt.Sprintf("Step %d", accepted+1),
		Tag:          titleCaser.String(label),
		Description:  "Apply " + label,
		Instructions: []string{defaultInstruction},
		Duration:     defaultDuration,
		WaitingTime:  defaultWaitingTime,
		Days:         allDays(true),
		Time:         []string{defaultTime},
	}

	if raw, ok := data.get("name"); ok {
		if s, valid := toString(raw); valid {
			step.Name = s
		}
	}
	if raw, ok := data.get("tag"); ok {
		if s, valid := toString(raw); valid {
			step.Tag = s
		}
	}
	if raw, ok := data.get("description"); ok {
		if s, valid := toString(raw); valid {
			step.Description = s
		}
	}
	if raw, ok := data.get("instructions"); ok {
		if list, valid := toStringSlice(raw); valid {
			step.Instructions = list
		}
	}
	if raw, ok := data.get("duration"); ok {
		if secs, valid := toSeconds(raw); valid {
			step.Duration = secs
		}
	}
	if raw, ok := data.get("waiting_time"); ok {
		if secs, valid := toSeconds(raw); valid {
			step.WaitingTime = secs
		}
	}
	if raw, ok := data.get("days"); ok {
		if days, valid := toDays(raw); valid {
			step.Days = days
		}
	}
	if raw, ok := data.get("time"); ok {
		if times, valid := toTimes(raw); valid {
			step.Time = times
		}
	}
	return step
}

func allDays(value bool) map[string]bool {
	days := make(map[string]bool, len(weekdays))
	for _, day := range weekdays {
		days[day] = value
	}
	return days
}

func toString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// toStringSlice accepts both an array of strings and a bare string, which
// some models emit for single-instruction steps.
func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		return []string{v}, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := toString(item); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}

func toSeconds(value any) (int, bool) {
	v, ok := value.(float64)
	if !ok || v < 0 {
		return 0, false
	}
	return int(v), true
}

// toDays normalizes a provided day mapping: the seven weekday keys are always
// present in the result, weekdays the model omitted default to false, and
// unknown keys are dropped.
func toDays(value any) (map[string]bool, bool) {
	provided, ok := value.(*object)
	if !ok {
		return nil, false
	}
	days := allDays(false)
	for _, day := range weekdays {
		if raw, found := provided.get(day); found {
			if b, isBool := raw.(bool); isBool {
				days[day] = b
			}
		}
	}
	return days, true
}

// toTimes keeps only recognized usage timings; an entry set that empties out
// counts as missing so the non-empty invariant holds.
func toTimes(value any) ([]string, bool) {
	list, ok := toStringSlice(value)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		clean := strings.ToLower(strings.TrimSpace(item))
		if _, valid := validTimes[clean]; valid {
			out = append(out, clean)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
