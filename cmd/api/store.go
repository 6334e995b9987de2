package main

import (
	"context"
	"fmt"

	"github.com/tickbox/tickbox/internal/config"
	"github.com/tickbox/tickbox/internal/repository"
	"github.com/tickbox/tickbox/internal/repository/sqlite"
	"github.com/tickbox/tickbox/internal/service"
)

// backend is what the services and readiness probe need from a store.
type backend interface {
	service.UserStore
	service.TodoStore
	Ping(ctx context.Context) error
}

// openedStore couples a backend with its close function; the two
// implementations close differently.
type openedStore struct {
	backend
	kind  config.StoreKind
	close func() error
}

func openStore(ctx context.Context, cfg *config.Config) (*openedStore, error) {
	kind, dsn, err := cfg.Store()
	if err != nil {
		return nil, err
	}

	switch kind {
	case config.StorePostgres:
		repo, err := repository.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &openedStore{
			backend: repo,
			kind:    kind,
			close:   func() error { repo.Close(); return nil },
		}, nil
	case config.StoreSQLite:
		st, err := sqlite.Open(dsn)
		if err != nil {
			return nil, err
		}
		return &openedStore{backend: st, kind: kind, close: st.Close}, nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedStoreURL, kind)
	}
}
