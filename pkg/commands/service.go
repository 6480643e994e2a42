package commands

import (
	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/config"
	"tableflip.dev/trip/pkg/store"
)

// loadService opens the configured store. Only the UI pays the simulated
// remote latency and failures; plain commands talk to the store directly.
func loadService(remote bool) (*app.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := &app.Service{Persistence: p}
	if remote {
		svc.Latency = cfg.RemoteLatency
		svc.FailRate = cfg.RemoteFailRate
	}
	return svc, cfg, nil
}
