package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/config"
	"github.com/shelfpostapp/shelfpost-server/internal/logger"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
	"github.com/shelfpostapp/shelfpost-server/internal/store/sqlite"
)

// StoreHandle wraps the store with Shutdownable.
type StoreHandle struct {
	Store store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore provides the SQLite-backed store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := sqlite.Open(cfg.Data.DatabasePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database opened", "path", cfg.Data.DatabasePath())

	return &StoreHandle{Store: st}, nil
}
