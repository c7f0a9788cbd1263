package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/stacks/internal/domain"
)

// Default fetch sizes
const (
	DefaultSubject       = "public_domain"
	DefaultTrendingLimit = 8
	DefaultCatalogLimit  = 40
)

// Notices shown when a fetch fails
const (
	NoticeTrendingFailed = "Trending books could not be loaded."
	NoticeCatalogFailed  = "We could not load the catalog right now."
)

// Result is the outcome of a fetch. A failed fetch has no works and a
// non-empty Notice; Err keeps the cause.
type Result struct {
	Works  []domain.Work
	Notice string
	Err    error
}

// Failed reports whether the fetch failed
func (r Result) Failed() bool {
	return r.Err != nil
}

// ServiceConfig configures a Service
type ServiceConfig struct {
	Subject       string
	TrendingURL   string // overrides Subject for trending when set
	TrendingLimit int
	CatalogLimit  int
}

// Service fetches the landing page and catalog page works
type Service struct {
	repo   domain.CatalogRepository
	cfg    ServiceConfig
	logger *slog.Logger
}

// NewService creates a new catalog service
func NewService(repo domain.CatalogRepository, cfg ServiceConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.TrendingLimit <= 0 {
		cfg.TrendingLimit = DefaultTrendingLimit
	}
	if cfg.CatalogLimit <= 0 {
		cfg.CatalogLimit = DefaultCatalogLimit
	}
	return &Service{repo: repo, cfg: cfg, logger: logger}
}

// Trending fetches the landing page works
func (s *Service) Trending(ctx context.Context) Result {
	return s.TrendingN(ctx, s.cfg.TrendingLimit)
}

// TrendingN fetches up to limit trending works
func (s *Service) TrendingN(ctx context.Context, limit int) Result {
	var works []domain.Work
	var err error
	if s.cfg.TrendingURL != "" {
		works, err = s.repo.FetchURL(ctx, s.cfg.TrendingURL, limit)
	} else {
		works, err = s.repo.FetchSubject(ctx, s.cfg.Subject, limit)
	}
	return s.result(ctx, "trending", works, err, limit, NoticeTrendingFailed)
}

// Catalog fetches the catalog page works
func (s *Service) Catalog(ctx context.Context) Result {
	works, err := s.repo.FetchSubject(ctx, s.cfg.Subject, s.cfg.CatalogLimit)
	return s.result(ctx, "catalog", works, err, s.cfg.CatalogLimit, NoticeCatalogFailed)
}

func (s *Service) result(ctx context.Context, what string, works []domain.Work, err error, limit int, notice string) Result {
	if err != nil {
		// A cancelled fetch belongs to a view that is gone
		if errors.Is(ctx.Err(), context.Canceled) {
			s.logger.Debug("fetch cancelled", "what", what)
		} else {
			s.logger.Warn("fetch failed", "what", what, "error", err)
		}
		return Result{Works: []domain.Work{}, Notice: notice, Err: err}
	}
	if limit > 0 && len(works) > limit {
		works = works[:limit]
	}
	return Result{Works: works}
}
