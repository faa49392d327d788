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
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds the settings needed to reach an Appwrite project
type Config struct {
	// EndpointURL is the Appwrite API endpoint, e.g. https://cloud.appwrite.io/v1
	EndpointURL string `validate:"required,url"`

	// ProjectID identifies the Appwrite project
	ProjectID string `validate:"required"`

	// SecretKey is the API key used by admin clients. Session clients ignore it.
	SecretKey string
}

// ConfigProvider supplies the Appwrite configuration to the factories
type ConfigProvider interface {
	AppwriteConfig() Config
}

// StaticConfig is a ConfigProvider that always returns itself
type StaticConfig Config

// AppwriteConfig returns the wrapped configuration
func (s StaticConfig) AppwriteConfig() Config {
	return Config(s)
}

// Validate checks the settings shared by session and admin clients
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid Appwrite config: %w", err)
	}
	return nil
}

// ValidateAdmin checks the settings required by admin clients
func (c Config) ValidateAdmin() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := validate.Var(c.SecretKey, "required"); err != nil {
		return fmt.Errorf("invalid Appwrite config: secret key: %w", err)
	}
	return nil
}
