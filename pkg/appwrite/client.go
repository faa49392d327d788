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

package appwrite

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sdk "github.com/appwrite/sdk-for-go/appwrite"
	"github.com/appwrite/sdk-for-go/client"
	"github.com/go-logr/logr"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/cogniteo/appwrite-clients/pkg/session"
)

// ErrNoSession is returned when the request carries no usable session cookie
var ErrNoSession = errors.New("no session")

// Handle is an Appwrite client bound to an endpoint, a project and one credential.
// Its accessors read the SDK client, so they always report what requests will carry.
type Handle struct {
	client client.Client
}

// Client returns the underlying SDK client
func (h *Handle) Client() client.Client {
	return h.client
}

// Endpoint returns the API endpoint requests are sent to
func (h *Handle) Endpoint() string {
	return h.client.Endpoint
}

// ProjectID returns the project the client is bound to
func (h *Handle) ProjectID() string {
	return h.client.Headers[headerProject]
}

// Session returns the session secret, empty for admin clients
func (h *Handle) Session() string {
	return h.client.Headers[headerSession]
}

// SecretKey returns the API key, empty for session clients
func (h *Handle) SecretKey() string {
	return h.client.Headers[headerKey]
}

const (
	headerProject = "X-Appwrite-Project"
	headerSession = "X-Appwrite-Session"
	headerKey     = "X-Appwrite-Key"
)

func newHandle(cfg Config, opts ...client.ClientOption) *Handle {
	setters := append([]client.ClientOption{
		sdk.WithEndpoint(cfg.EndpointURL),
		sdk.WithProject(cfg.ProjectID),
	}, opts...)

	return &Handle{client: sdk.NewClient(setters...)}
}

// Option configures a Factory
type Option func(*Factory)

// WithLogger sets the logger used instead of the one carried by the context
func WithLogger(log logr.Logger) Option {
	return func(f *Factory) {
		f.log = &log
	}
}

// Factory builds session and admin clients from a ConfigProvider
type Factory struct {
	config ConfigProvider
	log    *logr.Logger
}

// NewFactory creates a new client factory
func NewFactory(config ConfigProvider, opts ...Option) (*Factory, error) {
	if config == nil {
		return nil, fmt.Errorf("config provider cannot be nil")
	}

	f := &Factory{config: config}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Factory) logger(ctx context.Context) logr.Logger {
	if f.log != nil {
		return *f.log
	}
	return logf.FromContext(ctx)
}

// SessionClient creates a client authenticated as the user owning the
// appwrite-session cookie found in cookies. The configuration is not validated
// here; malformed settings surface as SDK errors on the first request.
func (f *Factory) SessionClient(ctx context.Context, cookies session.Store) (*SessionClient, error) {
	if cookies == nil {
		return nil, ErrNoSession
	}

	cookie, err := cookies.Cookie(ctx, session.SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session cookie: %w", err)
	}
	if cookie == nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	cfg := f.config.AppwriteConfig()
	handle := newHandle(cfg, sdk.WithSession(cookie.Value))

	f.logger(ctx).V(1).Info("Built Appwrite session client", "endpoint", cfg.EndpointURL, "project", cfg.ProjectID)
	return &SessionClient{handle: handle}, nil
}

// AdminClient creates a client authenticated with the project's secret API key
func (f *Factory) AdminClient(ctx context.Context) (*AdminClient, error) {
	cfg := f.config.AppwriteConfig()
	handle := newHandle(cfg, sdk.WithKey(cfg.SecretKey))

	f.logger(ctx).V(1).Info("Built Appwrite admin client", "endpoint", cfg.EndpointURL, "project", cfg.ProjectID)
	return &AdminClient{handle: handle}, nil
}

// AdminEnabled reports whether the current configuration can build usable admin clients
func (f *Factory) AdminEnabled() bool {
	return f.config.AppwriteConfig().ValidateAdmin() == nil
}

// NewSessionClient creates a session client without keeping a Factory around.
// This is a convenience function for one-off callers.
func NewSessionClient(ctx context.Context, config ConfigProvider, cookies session.Store) (*SessionClient, error) {
	f, err := NewFactory(config)
	if err != nil {
		return nil, err
	}
	return f.SessionClient(ctx, cookies)
}

// NewAdminClient creates an admin client without keeping a Factory around.
// This is a convenience function for one-off callers.
func NewAdminClient(ctx context.Context, config ConfigProvider) (*AdminClient, error) {
	f, err := NewFactory(config)
	if err != nil {
		return nil, err
	}
	return f.AdminClient(ctx)
}
