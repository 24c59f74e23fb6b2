package menu

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The upstream generation call returns its result in one of several shapes.
// Opaque result objects are probed through these accessors, in this order.

// StructuredProvider exposes an already-decoded plan payload.
type StructuredProvider interface {
	StructuredOutput() map[string]any
}

// RawTextProvider exposes the raw model text.
type RawTextProvider interface {
	RawText() string
}

// JSONTextProvider exposes a JSON rendering of the result.
type JSONTextProvider interface {
	JSONText() string
}

// Coerce converts an arbitrary representation of a candidate menu plan into
// a schema-conformant WeeklyMenuPlan. Malformed-but-parsable content is
// always repaired; only content that cannot be decoded as structured data at
// all yields an error, and the caller is expected to fall back to the sample
// plan in that case.
func Coerce(raw any) (*WeeklyMenuPlan, error) {
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("no menu plan content")
	case *WeeklyMenuPlan:
		return v, nil
	case WeeklyMenuPlan:
		return &v, nil
	case map[string]any:
		return planFromMapping(v)
	case string:
		return planFromText(v)
	}

	if p, ok := raw.(StructuredProvider); ok {
		if m := p.StructuredOutput(); m != nil {
			return planFromMapping(m)
		}
	}
	if p, ok := raw.(RawTextProvider); ok {
		if s := p.RawText(); s != "" {
			return planFromText(s)
		}
	}
	if p, ok := raw.(JSONTextProvider); ok {
		if s := p.JSONText(); s != "" {
			return planFromText(s)
		}
	}

	return nil, fmt.Errorf("unsupported menu plan representation %T", raw)
}

func planFromMapping(candidate map[string]any) (*WeeklyMenuPlan, error) {
	repaired := RepairPlan(candidate)

	data, err := json.Marshal(repaired)
	if err != nil {
		return nil, fmt.Errorf("failed to encode repaired plan: %w", err)
	}
	var plan WeeklyMenuPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to instantiate repaired plan: %w", err)
	}
	return &plan, nil
}

func planFromText(text string) (*WeeklyMenuPlan, error) {
	cleaned := stripCodeFence(text)

	var candidate map[string]any
	if err := json.Unmarshal([]byte(cleaned), &candidate); err != nil {
		// The model sometimes surrounds the JSON object with prose; salvage
		// the first balanced object before giving up.
		extracted := extractJSONObject(cleaned)
		if extracted == "" {
			return nil, fmt.Errorf("menu plan content is not parseable JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(extracted), &candidate); err != nil {
			return nil, fmt.Errorf("menu plan content is not parseable JSON: %w", err)
		}
	}
	return planFromMapping(candidate)
}

// stripCodeFence removes markdown code-fence wrapping from a model response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced JSON object found in s, or an
// empty string when there is none.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
