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

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Tool is an operation a model may request during an agent run.
// Implementations must be safe for concurrent use.
type Tool interface {
	// Name identifies the tool in model requests. Must be unique.
	Name() string

	// Description tells the model what the tool does and when to use it.
	Description() string

	// Parameters returns the JSON schema of the tool's arguments.
	Parameters() map[string]any

	// Call executes the tool with the model-supplied arguments.
	Call(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry holds the tools available to an agent run, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) error {
	name := strings.TrimSpace(tool.Name())
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownTool)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	r.tools[name] = tool
	return nil
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return tool, nil
}

// All returns the registered tools sorted by name.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		all = append(all, tool)
	}
	slices.SortFunc(all, func(a, b Tool) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return all
}
