package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

// Factory builds the ProviderClient matching a linked provider record.
type Factory struct {
	cfg    config.Providers
	logger *logger.Logger

	mu     sync.Mutex
	memory map[string]*MemoryClient
}

func NewFactory(cfg config.Providers, log *logger.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: log,
		memory: make(map[string]*MemoryClient),
	}
}

// NewClient returns a client for p. In-memory providers are shared per
// account for the lifetime of the factory.
func (f *Factory) NewClient(ctx context.Context, p models.Provider) (ProviderClient, error) {
	switch p.Type {
	case models.ProviderTypeMinIO:
		return NewMinIOProviderClient(f.cfg.MinIO, p.Account, f.logger)
	case models.ProviderTypeS3:
		return NewS3ProviderClient(ctx, f.cfg.S3, p.Account, f.logger)
	case models.ProviderTypeREST:
		return NewRESTProviderClient(f.cfg.REST, p.Account, f.logger)
	case models.ProviderTypeMemory:
		return f.MemoryClient(p.Account), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, p.Type)
	}
}

// MemoryClient returns the shared in-memory client of account.
func (f *Factory) MemoryClient(account string) *MemoryClient {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.memory[account]
	if !ok {
		c = NewMemoryClient(account)
		f.memory[account] = c
	}
	return c
}
