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
	"github.com/appwrite/sdk-for-go/account"
	sdk "github.com/appwrite/sdk-for-go/appwrite"
	"github.com/appwrite/sdk-for-go/avatars"
	"github.com/appwrite/sdk-for-go/databases"
	"github.com/appwrite/sdk-for-go/storage"
)

// SessionClient exposes the services an end user may reach with their own session.
// Every accessor call returns a new service bound to the same handle.
type SessionClient struct {
	handle *Handle
}

// Handle returns the client handle shared by the services
func (c *SessionClient) Handle() *Handle {
	return c.handle
}

// Account returns the account service of the session's user
func (c *SessionClient) Account() *account.Account {
	return sdk.NewAccount(c.handle.client)
}

// Databases returns the databases service
func (c *SessionClient) Databases() *databases.Databases {
	return sdk.NewDatabases(c.handle.client)
}

// AdminClient exposes every service with the privileges of the project's API key.
// Every accessor call returns a new service bound to the same handle.
type AdminClient struct {
	handle *Handle
}

// Handle returns the client handle shared by the services
func (c *AdminClient) Handle() *Handle {
	return c.handle
}

// Account returns the account service
func (c *AdminClient) Account() *account.Account {
	return sdk.NewAccount(c.handle.client)
}

// Databases returns the databases service
func (c *AdminClient) Databases() *databases.Databases {
	return sdk.NewDatabases(c.handle.client)
}

// Storage returns the storage service
func (c *AdminClient) Storage() *storage.Storage {
	return sdk.NewStorage(c.handle.client)
}

// Avatars returns the avatars service
func (c *AdminClient) Avatars() *avatars.Avatars {
	return sdk.NewAvatars(c.handle.client)
}
