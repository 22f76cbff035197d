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


// Package storage defines the persistence interfaces for extraction run
// history and the binary serialization of the stored records.
//
// The RunRepository interface covers everything the rest of the system
// needs from a store: append completed runs, fetch them by ID, list them
// by URL or recency, and prune old ones. The badger subpackage provides
// the BadgerDB-backed implementation used in production and, in-memory,
// in tests.
//
// Records are serialized with the MUS binary format; the serializers are
// generated into the core package by cmd/musgen.
package storage
