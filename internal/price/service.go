package price

import (
	"context"
	"errors"

	"github.com/wichananm65/image-price-checker/internal/logger"
)

type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Lookup returns the repository result unchanged, so callers can tell a
// missing product (ErrNotFound) from a failed lookup.
func (s *Service) Lookup(ctx context.Context, name string) (Price, error) {
	return s.repo.GetPrice(ctx, name)
}

// GetPrice reports whether a price is available for name. Lookup failures are
// logged and reported exactly like a missing product.
func (s *Service) GetPrice(ctx context.Context, name string) (Price, bool) {
	p, err := s.repo.GetPrice(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("Database error: %v", err)
		}
		return "", false
	}
	return p, true
}

// ListByNames resolves several labels at once for the prices API.
func (s *Service) ListByNames(ctx context.Context, names []string) ([]PricedItem, error) {
	return s.repo.ListByNames(ctx, names)
}
