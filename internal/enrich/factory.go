package enrich

import (
	"match-highlights/internal/common/logging"
	"match-highlights/internal/config"
)

// NewEnricher picks the strategy at composition time: the deterministic
// stub unless the remote enricher is explicitly enabled.
func NewEnricher(cfg *config.Config, logger logging.Logger) Enricher {
	if cfg.UseStubEnricher {
		return NewStubEnricher()
	}

	return NewRemoteEnricher(RemoteConfig{
		Endpoint: cfg.EnrichmentEndpoint,
		APIKey:   cfg.EnrichmentAPIKey,
		Timeout:  cfg.EnrichmentTimeout,
	}, logger)
}
