// internal/services/market_data_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/repricer-backend/internal/config"
	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/models"
	"github.com/javajoker/repricer-backend/internal/stockx"
)

var ErrVariantNotFound = errors.New("variant not found")

type MarketDataService struct {
	db     *gorm.DB
	client *stockx.Client
	mapper *stockx.Mapper
	clock  domain.Clock
	cfg    config.PricingConfig
	logger *logrus.Logger
}

func NewMarketDataService(db *gorm.DB, client *stockx.Client, mapper *stockx.Mapper,
	clock domain.Clock, cfg config.PricingConfig, logger *logrus.Logger) *MarketDataService {
	return &MarketDataService{
		db:     db,
		client: client,
		mapper: mapper,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
	}
}

// RefreshVariant fetches the current order book for one variant and stores
// it as a new snapshot. Snapshots are append-only; history stays queryable.
func (s *MarketDataService) RefreshVariant(ctx context.Context, productID, variantID string) (domain.MarketData, error) {
	payload, err := s.client.GetVariantMarketData(ctx, productID, variantID, "USD")
	if err != nil {
		if stockx.IsNotFound(err) {
			return domain.MarketData{}, ErrVariantNotFound
		}
		return domain.MarketData{}, fmt.Errorf("failed to fetch market data: %w", err)
	}

	md, err := s.mapper.MarketDataFromPayload(payload, s.clock.Now())
	if err != nil {
		return domain.MarketData{}, fmt.Errorf("failed to map market data for variant %s: %w", variantID, err)
	}

	row := snapshotFromMarketData(variantID, md)
	if err := s.db.Create(row).Error; err != nil {
		return domain.MarketData{}, fmt.Errorf("failed to store market data snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"variant_id":   variantID,
		"sample_count": md.SampleCount(),
	}).Debug("Market data snapshot stored")

	return md, nil
}

// RefreshStaleVariants refreshes every variant of the product whose latest
// snapshot is older than the configured staleness window. Failures are
// collected rather than aborting the sweep.
func (s *MarketDataService) RefreshStaleVariants(ctx context.Context, aggregate *domain.ProductAggregate) (int, []error) {
	maxAge := time.Duration(s.cfg.StaleDataMaxAgeSecs) * time.Second
	stale := aggregate.VariantsWithStaleMarketData(maxAge, s.clock)

	var refreshed int
	var failures []error
	for _, variant := range stale {
		md, err := s.RefreshVariant(ctx, aggregate.ProductID().Value(), variant.ID().Value())
		if err != nil {
			failures = append(failures, fmt.Errorf("variant %s: %w", variant.ID().Value(), err))
			continue
		}
		variant.RefreshMarketData(md)
		refreshed++
	}

	if len(failures) > 0 {
		s.logger.WithFields(logrus.Fields{
			"product_id": aggregate.ProductID().Value(),
			"refreshed":  refreshed,
			"failed":     len(failures),
		}).Warn("Stale market data sweep finished with failures")
	}

	return refreshed, failures
}

// GetLatestMarketData returns the newest stored snapshot for a variant.
func (s *MarketDataService) GetLatestMarketData(variantID string) (domain.MarketData, error) {
	var snapshot models.MarketDataSnapshot
	err := s.db.Where("variant_id = ?", variantID).
		Order("snapshot_at DESC").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.MarketData{}, ErrVariantNotFound
	}
	if err != nil {
		return domain.MarketData{}, fmt.Errorf("database error: %w", err)
	}

	return domain.MarketDataFromStockXAPI(marketDataRecord(&snapshot))
}

// GetSnapshotHistory returns stored snapshots for a variant inside a range,
// newest first.
func (s *MarketDataService) GetSnapshotHistory(variantID string, r domain.TimeRange, limit int) ([]models.MarketDataSnapshot, error) {
	var snapshots []models.MarketDataSnapshot
	query := s.db.Where("variant_id = ? AND snapshot_at BETWEEN ? AND ?",
		variantID, r.Start(), r.End()).
		Order("snapshot_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", err)
	}
	return snapshots, nil
}
