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
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// KubernetesSecrets reads secrets from Kubernetes Secret objects.
// Names have the form <namespace>/<secret>/<key>.
type KubernetesSecrets struct {
	clientset kubernetes.Interface
}

// NewKubernetesSecrets creates a new Kubernetes source from a REST config
func NewKubernetesSecrets(cfg *rest.Config) (*KubernetesSecrets, error) {
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}
	return NewKubernetesSecretsForClientset(clientset), nil
}

// NewKubernetesSecretsForClientset creates a new Kubernetes source around an existing clientset
func NewKubernetesSecretsForClientset(clientset kubernetes.Interface) *KubernetesSecrets {
	return &KubernetesSecrets{clientset: clientset}
}

// GetSecret returns one key of a Secret
func (k *KubernetesSecrets) GetSecret(ctx context.Context, name string) (string, error) {
	parts := strings.Split(name, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", fmt.Errorf("secret reference %q must be <namespace>/<secret>/<key>", name)
	}
	namespace, secretName, key := parts[0], parts[1], parts[2]

	secret, err := k.clientset.CoreV1().Secrets(namespace).Get(ctx, secretName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return "", fmt.Errorf("secret %s/%s not found", namespace, secretName)
		}
		return "", fmt.Errorf("failed to get secret %s/%s: %w", namespace, secretName, err)
	}

	if value, ok := secret.Data[key]; ok {
		return string(value), nil
	}
	if value, ok := secret.StringData[key]; ok {
		return value, nil
	}

	return "", fmt.Errorf("key %s not found in secret %s/%s", key, namespace, secretName)
}
