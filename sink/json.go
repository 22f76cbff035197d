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

// Package sink writes extraction results to files for downstream use.
package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// document is the JSON shape written for one extraction run. Run metadata
// (URL, timestamps, chunk counts) stays out of the document; the console
// display and the history database carry it.
type document struct {
	Summary   string   `json:"summary,omitempty"`
	Companies []string `json:"companies"`
	Persons   []string `json:"persons"`
	Events    []string `json:"events"`
}

// WriteJSON writes a run's consolidated result to w as indented JSON. Entity
// names keep their original characters; nothing is HTML-escaped.
func WriteJSON(w io.Writer, run *core.ExtractionRun) error {
	doc := document{
		Summary:   run.Result.Summary,
		Companies: emptyIfNil(run.Result.Companies),
		Persons:   emptyIfNil(run.Result.Persons),
		Events:    emptyIfNil(run.Result.Events),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(doc)
}

// WriteFile writes a run as JSON to the named file, replacing any
// existing content.
func WriteFile(path string, run *core.ExtractionRun) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(f, run); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Sync()
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
