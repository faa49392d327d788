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

package server

import (
	"context"
	"errors"

	"github.com/appwrite/sdk-for-go/account"
	"github.com/appwrite/sdk-for-go/models"

	"github.com/cogniteo/appwrite-clients/pkg/appwrite"
	"github.com/cogniteo/appwrite-clients/pkg/session"
)

// AccountReader reads the account of the authenticated user
type AccountReader interface {
	Get() (*models.User, error)
}

// SessionCreator exchanges a user id and token secret for a session
type SessionCreator interface {
	CreateSession(userID string, secret string) (*models.Session, error)
}

var (
	_ AccountReader  = (*account.Account)(nil)
	_ SessionCreator = (*account.Account)(nil)
)

// ErrAdminDisabled is returned when no secret key is configured for admin clients
var ErrAdminDisabled = errors.New("admin clients disabled")

// Backend hands out per-request Appwrite services
type Backend interface {
	// SessionAccount returns the account service of the user owning the request's session
	SessionAccount(ctx context.Context, cookies session.Store) (AccountReader, error)

	// AdminAccount returns the account service authenticated with the API key
	AdminAccount(ctx context.Context) (SessionCreator, error)
}

type factoryBackend struct {
	factory *appwrite.Factory
}

// NewBackend creates a Backend that builds a fresh client for every call
func NewBackend(factory *appwrite.Factory) Backend {
	return &factoryBackend{factory: factory}
}

func (b *factoryBackend) SessionAccount(ctx context.Context, cookies session.Store) (AccountReader, error) {
	client, err := b.factory.SessionClient(ctx, cookies)
	if err != nil {
		return nil, err
	}
	return client.Account(), nil
}

func (b *factoryBackend) AdminAccount(ctx context.Context) (SessionCreator, error) {
	if !b.factory.AdminEnabled() {
		return nil, ErrAdminDisabled
	}
	client, err := b.factory.AdminClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.Account(), nil
}
