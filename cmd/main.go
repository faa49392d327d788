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

package main

import (
	"context"
	"os"

	"github.com/alecthomas/kingpin/v2"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"github.com/cogniteo/appwrite-clients/internal/secrets"
	"github.com/cogniteo/appwrite-clients/internal/server"
	"github.com/cogniteo/appwrite-clients/pkg/appwrite"
)

var (
	setupLog = ctrl.Log.WithName("setup")
)

func main() {
	app := kingpin.New("appwrite-clients", "Serves Appwrite session and admin clients to HTTP requests.")
	endpoint := app.Flag("endpoint", "Appwrite API endpoint, e.g. https://cloud.appwrite.io/v1.").
		Envar("APPWRITE_ENDPOINT").Required().String()
	projectID := app.Flag("project", "Appwrite project ID.").
		Envar("APPWRITE_PROJECT_ID").Required().String()
	secretKeyRef := app.Flag("secret-key",
		"Appwrite API key for admin clients. Accepts a literal value or a reference: "+
			"ssm:<parameter>, k8s:<namespace>/<secret>/<key>, env:<VAR>. "+
			"If not provided, admin clients are disabled.").
		Envar("APPWRITE_SECRET_KEY").String()
	listenAddr := app.Flag("listen-address", "The address the HTTP server binds to.").
		Default(":8080").String()
	development := app.Flag("development", "Enable development logging.").Bool()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	ctrl.SetLogger(zap.New(zap.UseDevMode(*development)))
	ctx := signals.SetupSignalHandler()

	resolver := secrets.NewResolver()
	resolver.Register("ssm", secrets.NewLazySource(func(ctx context.Context) (secrets.Source, error) {
		store, err := secrets.NewParameterStore(ctx)
		if err != nil {
			return nil, err
		}
		return store, nil
	}))
	resolver.Register("k8s", secrets.NewLazySource(func(context.Context) (secrets.Source, error) {
		cfg, err := ctrl.GetConfig()
		if err != nil {
			return nil, err
		}
		store, err := secrets.NewKubernetesSecrets(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	}))

	var secretKey string
	if *secretKeyRef != "" {
		key, err := resolver.Resolve(ctx, *secretKeyRef)
		if err != nil {
			setupLog.Error(err, "unable to resolve Appwrite secret key")
			os.Exit(1)
		}
		secretKey = key
	} else {
		setupLog.Info("Appwrite secret key not provided, admin clients disabled")
	}

	cfg := appwrite.Config{
		EndpointURL: *endpoint,
		ProjectID:   *projectID,
		SecretKey:   secretKey,
	}
	if err := cfg.Validate(); err != nil {
		setupLog.Error(err, "invalid Appwrite configuration")
		os.Exit(1)
	}

	setupLog.Info("Initializing Appwrite client factory", "endpoint", cfg.EndpointURL, "project", cfg.ProjectID)
	factory, err := appwrite.NewFactory(appwrite.StaticConfig(cfg))
	if err != nil {
		setupLog.Error(err, "unable to create Appwrite client factory")
		os.Exit(1)
	}

	srv := server.New(server.NewBackend(factory), ctrl.Log.WithName("server"))
	if err := srv.Run(ctx, *listenAddr); err != nil {
		setupLog.Error(err, "problem running server")
		os.Exit(1)
	}
}
