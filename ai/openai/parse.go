// Copyright 2025 Observatorio Regulatorio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"encoding/json"
	"strings"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
)

// stripFences removes markdown code fences models sometimes wrap around
// their JSON output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseEntities decodes a model response into an entity set. Category keys
// are accepted under their Spanish and English aliases; unknown keys are
// ignored. A bare string where a list is expected counts as a single entry.
func parseEntities(raw string) (ai.EntitySet, error) {
	payload, err := decodePayload(raw)
	if err != nil {
		return ai.EntitySet{}, err
	}

	var set ai.EntitySet
	for key, value := range payload {
		category, ok := ai.NormalizeCategory(key)
		if !ok {
			continue
		}
		entries := coerceList(value)
		switch category {
		case ai.CategoryCompanies:
			set.Companies = append(set.Companies, entries...)
		case ai.CategoryPersons:
			set.Persons = append(set.Persons, entries...)
		case ai.CategoryEvents:
			set.Events = append(set.Events, entries...)
		}
	}
	return set, nil
}

// summaryAliases are the keys under which models report the document summary.
var summaryAliases = map[string]struct{}{
	"summary": {},
	"resumen": {},
}

// parseConsolidated decodes a consolidation response: the three entity
// categories plus a summary.
func parseConsolidated(raw string) (*ai.Consolidated, error) {
	payload, err := decodePayload(raw)
	if err != nil {
		return nil, err
	}

	consolidated := &ai.Consolidated{}
	for key, value := range payload {
		normalized := strings.ToLower(strings.TrimSpace(key))
		if _, ok := summaryAliases[normalized]; ok {
			if s, isString := value.(string); isString {
				consolidated.Summary = strings.TrimSpace(s)
			}
			continue
		}

		category, ok := ai.NormalizeCategory(key)
		if !ok {
			continue
		}
		entries := coerceList(value)
		switch category {
		case ai.CategoryCompanies:
			consolidated.Companies = append(consolidated.Companies, entries...)
		case ai.CategoryPersons:
			consolidated.Persons = append(consolidated.Persons, entries...)
		case ai.CategoryEvents:
			consolidated.Events = append(consolidated.Events, entries...)
		}
	}
	return consolidated, nil
}

func decodePayload(raw string) (map[string]any, error) {
	cleaned := repairJSON(stripFences(raw))

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// coerceList converts a decoded JSON value to a list of strings. Models
// occasionally return a single string instead of an array; treat it as a
// one-element list. Non-string array elements are dropped.
func coerceList(value any) []string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	case []any:
		entries := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				entries = append(entries, s)
			}
		}
		return entries
	default:
		return nil
	}
}

// repairJSON fixes a malformation some local models produce: an object key
// missing its opening quote, as in `{persons": [...]}`. After every `{` or
// `,` it looks for a bare word closed by `":` and inserts the missing quote.
// Everything else passes through untouched.
func repairJSON(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 16)

	for i := 0; i < len(runes); {
		r := runes[i]
		b.WriteRune(r)
		i++
		if r != '{' && r != ',' {
			continue
		}

		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			b.WriteRune(runes[i])
			i++
		}

		start := i
		for i < len(runes) && isKeyRune(runes[i]) {
			i++
		}
		key := string(runes[start:i])
		if key != "" && i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			b.WriteRune('"')
			b.WriteString(strings.TrimSpace(key))
		} else {
			b.WriteString(key)
		}
	}

	return b.String()
}

func isKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == ' '
}
