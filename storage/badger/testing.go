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


package badger

import "github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/storage"

// NewMemoryRepository creates an in-memory run repository for testing.
// Returns runRepo, backend, and error.
// Caller must close both the repo and the backend when done.
func NewMemoryRepository() (storage.RunRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	runRepo, err := NewRunRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return runRepo, backend, nil
}
