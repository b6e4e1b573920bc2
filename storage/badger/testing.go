// Copyright 2025 Poiesic Systems
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

import "github.com/poiesic/corpus/storage"

// NewMemoryMetadataStore creates an in-memory metadata store for testing.
// Caller must close both the store and the backend when done.
func NewMemoryMetadataStore() (storage.MetadataStore, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	store, err := NewMetadataStore(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return store, backend, nil
}

// NewMemoryDomainRegistry creates an in-memory domain registry for testing.
// Caller must close both the registry and the backend when done.
func NewMemoryDomainRegistry() (storage.DomainRegistry, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	registry, err := NewDomainRegistry(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return registry, backend, nil
}
