package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"goonj/internal/clock"
	"goonj/internal/domain"
	"goonj/internal/export"
)

const (
	viewCacheKey  = "registrations:view"
	freshCacheKey = "registrations:fresh"
)

type adminService struct {
	repo     domain.RegistrationRepository
	cache    *gocache.Cache
	cacheTTL time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	fetchMu sync.Mutex
}

// NewAdminService returns the dashboard service. The fetched collection is kept in memory and
// considered fresh for cacheTTL; zero keeps it until an explicit refresh.
func NewAdminService(repo domain.RegistrationRepository, cacheTTL time.Duration, clk clock.Clock, logger *slog.Logger) domain.AdminService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &adminService{
		repo:     repo,
		cache:    gocache.New(gocache.NoExpiration, 10*time.Minute),
		cacheTTL: cacheTTL,
		clock:    clk,
		logger:   logger,
	}
}

func (s *adminService) FetchAll(ctx context.Context) ([]*domain.Registration, error) {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	view := domain.NewRegistrationView(records, s.clock.Now())
	s.cache.Set(viewCacheKey, view, gocache.NoExpiration)
	ttl := s.cacheTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	s.cache.Set(freshCacheKey, true, ttl)
	return view.All(), nil
}

func (s *adminService) cachedView() (*domain.RegistrationView, bool) {
	v, ok := s.cache.Get(viewCacheKey)
	if !ok {
		return nil, false
	}
	_, fresh := s.cache.Get(freshCacheKey)
	return v.(*domain.RegistrationView), fresh
}

func (s *adminService) List(ctx context.Context, filter domain.RegistrationFilter, refresh bool) (*domain.RegistrationListing, error) {
	view, fresh := s.cachedView()
	stale := false
	if view == nil || !fresh || refresh {
		if _, err := s.FetchAll(ctx); err != nil {
			if view == nil {
				return nil, err
			}
			s.logger.WarnContext(ctx, "refresh failed, serving cached registrations", "fetched_at", view.FetchedAt(), "err", err)
			stale = true
		} else {
			view, _ = s.cachedView()
		}
	}

	matched := view.Select(filter)
	return &domain.RegistrationListing{
		Registrations: matched,
		Total:         view.Len(),
		Matched:       len(matched),
		Filter:        filter,
		FetchedAt:     view.FetchedAt(),
		Stale:         stale,
	}, nil
}

func (s *adminService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: registration id is required", domain.ErrInvalidInput)
	}
	// Serialised with FetchAll so a fetch in flight cannot cache the deleted record again.
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if view, _ := s.cachedView(); view != nil {
		view.Remove(id)
	}
	s.logger.InfoContext(ctx, "registration deleted", "registration_id", id)
	return nil
}

func (s *adminService) Export(ctx context.Context, filter domain.RegistrationFilter, w io.Writer) (string, error) {
	listing, err := s.List(ctx, filter, false)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, listing.Registrations); err != nil {
		return "", fmt.Errorf("failed to export registrations: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return export.Filename(s.clock.Now()), nil
}
