package analyses

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseFields recovers the six structured fields from free-form model output.
// The model is instructed to answer with a JSON object but may wrap it in
// prose, so the defined extraction rule is the substring from the first '{'
// to the last '}' inclusive, not a general JSON tokenizer.
func ParseFields(raw string) (Fields, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return Fields{}, fmt.Errorf("%w: no JSON object in output", ErrParse)
	}

	candidate := raw[start : end+1]

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return Fields{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return Fields{
		ProjectName:              stringField(payload, "projectName"),
		ProjectDuration:          stringField(payload, "projectDuration"),
		HumanResourcesHierarchy:  stringField(payload, "humanResourcesHierarchy"),
		ProjectStages:            stringField(payload, "projectStages"),
		SpecialConditions:        stringField(payload, "specialConditions"),
		ImplementationBoundaries: stringField(payload, "implementationBoundaries"),
	}, nil
}

// stringField returns the value for key if present and a JSON string,
// otherwise the empty string. Unknown keys and non-string values are ignored.
func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
