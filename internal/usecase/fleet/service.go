// Package fleet spreads platform operations over every configured server.
package fleet

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/zerowrap"
	"golang.org/x/sync/errgroup"

	"github.com/appops-dev/appops/internal/boundaries/in"
	"github.com/appops-dev/appops/internal/domain"
)

// DefaultParallelism bounds how many servers are contacted at once.
const DefaultParallelism = 4

// Service implements in.FleetService.
type Service struct {
	platforms   map[string]in.PlatformService
	parallelism int
	log         zerowrap.Logger
}

// NewService creates a fleet over the given per-server platform services.
// A parallelism below 1 falls back to DefaultParallelism.
func NewService(platforms map[string]in.PlatformService, parallelism int, log zerowrap.Logger) *Service {
	if parallelism < 1 {
		parallelism = DefaultParallelism
	}
	return &Service{
		platforms:   platforms,
		parallelism: parallelism,
		log:         log,
	}
}

// Servers returns the configured server names in sorted order.
func (s *Service) Servers() []string {
	names := make([]string, 0, len(s.platforms))
	for name := range s.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Platform returns the platform service of server.
func (s *Service) Platform(server string) (in.PlatformService, error) {
	p, ok := s.platforms[server]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrServerNotFound, server)
	}
	return p, nil
}

// AppsList lists the apps of every server, one session per server.
func (s *Service) AppsList(ctx context.Context) (map[string][]domain.App, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "FleetAppsList",
		zerowrap.FieldCount:   len(s.platforms),
	})

	return fanOut(ctx, s, func(ctx context.Context, server string, p in.PlatformService) ([]domain.App, error) {
		names, err := p.AppsList(ctx)
		if err != nil {
			return nil, err
		}
		apps := make([]domain.App, 0, len(names))
		for _, name := range names {
			apps = append(apps, domain.App{Name: name, Server: server})
		}
		return apps, nil
	})
}

// Ping pings every server and returns each platform version.
func (s *Service) Ping(ctx context.Context) (map[string]string, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "FleetPing",
		zerowrap.FieldCount:   len(s.platforms),
	})

	return fanOut(ctx, s, func(ctx context.Context, _ string, p in.PlatformService) (string, error) {
		return p.Ping(ctx)
	})
}

// fanOut runs fn against every server concurrently. The first failure cancels
// the others and fails the call.
func fanOut[T any](
	ctx context.Context,
	s *Service,
	fn func(ctx context.Context, server string, p in.PlatformService) (T, error),
) (map[string]T, error) {
	log := zerowrap.FromCtx(ctx)

	var mu sync.Mutex
	result := make(map[string]T, len(s.platforms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for _, server := range s.Servers() {
		p := s.platforms[server]
		g.Go(func() error {
			value, err := fn(gctx, server, p)
			if err != nil {
				log.Warn().Err(err).Str(zerowrap.FieldHost, server).Msg("server call failed")
				return fmt.Errorf("server %s: %w", server, err)
			}
			mu.Lock()
			result[server] = value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
