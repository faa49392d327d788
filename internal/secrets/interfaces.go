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

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Source looks up a secret value by name
type Source interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func(ctx context.Context, name string) (string, error)

// GetSecret calls f(ctx, name)
func (f SourceFunc) GetSecret(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// SSMAPI defines the interface for SSM API client operations
// This allows us to mock the client for testing
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Verify that *ssm.Client implements the SSMAPI interface
var _ SSMAPI = (*ssm.Client)(nil)
