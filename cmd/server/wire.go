// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"torslanda_locals_backend/internal/app"
	"torslanda_locals_backend/internal/auth"
	"torslanda_locals_backend/internal/blobstore"
	"torslanda_locals_backend/internal/config"
	"torslanda_locals_backend/internal/local"
	"torslanda_locals_backend/internal/platform/crypto"
	"torslanda_locals_backend/internal/platform/metrics"
	"torslanda_locals_backend/internal/shared"
	"torslanda_locals_backend/internal/user"

	"github.com/google/wire"
)

// initializeApp is the main Wire injector.
func initializeApp(cfg *config.Config, opts cliOptions) (*application, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		provideDatabase,
		metrics.New,
		blobstore.New,

		// Credentials
		auth.ProvideHasher,
		crypto.ProvideTokenIssuer,
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(shared.TokenResolver), new(*user.ServiceImplementation)),
		wire.Bind(new(shared.CredentialChecker), new(*user.ServiceImplementation)),
		auth.NewGuard,

		// Directory
		local.NewGORMRepository,
		provideLocalService,
		wire.Bind(new(local.Service), new(*local.ServiceImplementation)),

		// Handlers
		auth.NewHandler,
		user.NewHandler,
		provideLocalHandler,

		// Search
		provideSearchClient,
		provideIndexer,
		provideLocalsIndexJob,

		// Application Layer
		app.NewServer,
		wire.Struct(new(application), "*"),
	)
	return nil, nil, nil
}
