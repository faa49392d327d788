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

package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

// Resolver turns secret references such as ssm:/appwrite/key into values.
// References whose scheme is not registered are returned verbatim.
type Resolver struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewResolver creates a resolver that understands env: references
func NewResolver() *Resolver {
	r := &Resolver{sources: make(map[string]Source)}
	r.Register("env", SourceFunc(lookupEnv))
	return r
}

// Register binds a scheme to a source, replacing any previous binding
func (r *Resolver) Register(scheme string, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[scheme] = src
}

// Resolve returns the value behind ref
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	scheme, name, ok := strings.Cut(ref, ":")
	if !ok {
		return ref, nil
	}

	r.mu.RLock()
	src, registered := r.sources[scheme]
	r.mu.RUnlock()
	if !registered {
		return ref, nil
	}

	value, err := src.GetSecret(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s secret: %w", scheme, err)
	}

	logf.FromContext(ctx).V(1).Info("Resolved secret reference", "scheme", scheme)
	return value, nil
}

func lookupEnv(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("environment variable name cannot be empty")
	}
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %s is not set", name)
	}
	return value, nil
}

// LazySource builds its backing source on first use.
// A failed build is cached and returned to every later caller.
type LazySource struct {
	build func(ctx context.Context) (Source, error)

	once sync.Once
	src  Source
	err  error
}

// NewLazySource creates a source that defers build until a secret is requested
func NewLazySource(build func(ctx context.Context) (Source, error)) *LazySource {
	return &LazySource{build: build}
}

// GetSecret builds the source if needed and delegates to it
func (l *LazySource) GetSecret(ctx context.Context, name string) (string, error) {
	l.once.Do(func() {
		l.src, l.err = l.build(ctx)
	})
	if l.err != nil {
		return "", l.err
	}
	return l.src.GetSecret(ctx, name)
}
