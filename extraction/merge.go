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

package extraction

import (
	"strings"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// MergeUnion combines the per-chunk partial results into a single result
// by taking the union of each category. Entries are deduplicated
// case-insensitively after trimming whitespace; the first occurrence wins
// and keeps its original casing. Failed chunks contribute nothing.
// The returned result has no summary.
func MergeUnion(results []core.PartialResult) core.ConsolidatedResult {
	var companies, persons, events [][]string
	for _, r := range results {
		if r.Failed {
			continue
		}
		companies = append(companies, r.Companies)
		persons = append(persons, r.Persons)
		events = append(events, r.Events)
	}

	return core.ConsolidatedResult{
		Companies: dedupe(companies),
		Persons:   dedupe(persons),
		Events:    dedupe(events),
	}
}

// dedupe flattens the lists preserving encounter order, dropping blanks
// and case-insensitive duplicates of earlier entries.
func dedupe(lists [][]string) []string {
	seen := make(map[string]struct{})
	merged := []string{}

	for _, list := range lists {
		for _, entry := range list {
			trimmed := strings.TrimSpace(entry)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, trimmed)
		}
	}

	return merged
}
