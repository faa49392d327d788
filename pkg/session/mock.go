/*
Copyright 2025 Piotr Janik.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package session

import (
	"context"
	"net/http"
	"sync"
)

// MapStore implements the Store interface over an in-memory map.
// It is used by tests and local tooling that have no request at hand.
type MapStore struct {
	mu      sync.RWMutex
	cookies map[string]string
}

// NewMapStore creates a new in-memory store seeded with the given name/value pairs
func NewMapStore(values map[string]string) *MapStore {
	cookies := make(map[string]string, len(values))
	for name, value := range values {
		cookies[name] = value
	}
	return &MapStore{cookies: cookies}
}

// Set stores a cookie value
func (m *MapStore) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cookies[name] = value
}

// Delete removes a cookie
func (m *MapStore) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cookies, name)
}

// Cookie returns the named cookie from the map
func (m *MapStore) Cookie(_ context.Context, name string) (*http.Cookie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.cookies[name]
	if !exists {
		return nil, http.ErrNoCookie
	}

	// Return a fresh cookie to avoid reference issues
	return &http.Cookie{Name: name, Value: value}, nil
}
