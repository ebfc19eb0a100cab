package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfpostapp/shelfpost-server/internal/config"
	"github.com/shelfpostapp/shelfpost-server/internal/covers"
	"github.com/shelfpostapp/shelfpost-server/internal/logger"
)

// CoverServiceHandle wraps the cover lookup service with Shutdownable.
// Service is nil when cover lookup is disabled.
type CoverServiceHandle struct {
	Service *covers.Service
}

// Shutdown implements do.Shutdownable.
func (h *CoverServiceHandle) Shutdown() error {
	if h.Service == nil {
		return nil
	}
	return h.Service.Close()
}

// ProvideCoverService provides the Open Library cover lookup service.
func ProvideCoverService(i do.Injector) (*CoverServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Covers.Enabled {
		log.Info("Cover lookup disabled by configuration")
		return &CoverServiceHandle{}, nil
	}

	svc, err := covers.NewService(cfg.Data.CoverCachePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	return &CoverServiceHandle{Service: svc}, nil
}
