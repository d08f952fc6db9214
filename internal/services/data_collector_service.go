// internal/services/data_collector_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/models"
)

// DataCollectorService orchestrates a full collection pass: sync the catalog
// entry, then refresh whatever market data has gone stale. One failing
// product never aborts the run; failures are reported per product.
type DataCollectorService struct {
	db             *gorm.DB
	productService *ProductService
	marketData     *MarketDataService
	logger         *logrus.Logger
}

type CollectionReport struct {
	ProductsSynced    int               `json:"products_synced"`
	VariantsRefreshed int               `json:"variants_refreshed"`
	Failures          map[string]string `json:"failures,omitempty"`
}

func NewDataCollectorService(db *gorm.DB, productService *ProductService,
	marketData *MarketDataService, logger *logrus.Logger) *DataCollectorService {
	return &DataCollectorService{
		db:             db,
		productService: productService,
		marketData:     marketData,
		logger:         logger,
	}
}

// CollectProducts runs a collection pass over the given product IDs.
func (s *DataCollectorService) CollectProducts(ctx context.Context, productIDs []string) (*CollectionReport, error) {
	report := &CollectionReport{Failures: make(map[string]string)}

	for _, productID := range productIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		aggregate, err := s.productService.SyncProduct(ctx, productID)
		if err != nil {
			report.Failures[productID] = err.Error()
			s.logger.WithError(err).WithField("product_id", productID).
				Warn("Product sync failed during collection")
			continue
		}
		report.ProductsSynced++

		refreshed, failures := s.marketData.RefreshStaleVariants(ctx, aggregate)
		report.VariantsRefreshed += refreshed
		for _, ferr := range failures {
			report.Failures[productID] = ferr.Error()
		}
	}

	if len(report.Failures) == 0 {
		report.Failures = nil
	}

	s.logger.WithFields(logrus.Fields{
		"products": report.ProductsSynced,
		"variants": report.VariantsRefreshed,
		"failures": len(report.Failures),
	}).Info("Collection pass finished")

	return report, nil
}

// CollectTrackedProducts runs a pass over every product already stored.
func (s *DataCollectorService) CollectTrackedProducts(ctx context.Context) (*CollectionReport, error) {
	var ids []string
	if err := s.db.Model(&models.Product{}).Pluck("product_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracked products: %w", err)
	}
	return s.CollectProducts(ctx, ids)
}

// RefreshProductMarketData refreshes stale variants for one stored product.
func (s *DataCollectorService) RefreshProductMarketData(ctx context.Context, productID string) (*domain.ProductAggregate, int, error) {
	aggregate, err := s.productService.GetProduct(productID)
	if err != nil {
		return nil, 0, err
	}

	refreshed, failures := s.marketData.RefreshStaleVariants(ctx, aggregate)
	if len(failures) > 0 {
		return aggregate, refreshed, fmt.Errorf("refresh finished with %d failures, first: %v", len(failures), failures[0])
	}
	return aggregate, refreshed, nil
}
