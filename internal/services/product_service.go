// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/models"
	"github.com/javajoker/repricer-backend/internal/stockx"
	"github.com/javajoker/repricer-backend/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	db     *gorm.DB
	client *stockx.Client
	mapper *stockx.Mapper
	logger *logrus.Logger
}

func NewProductService(db *gorm.DB, client *stockx.Client, mapper *stockx.Mapper, logger *logrus.Logger) *ProductService {
	return &ProductService{
		db:     db,
		client: client,
		mapper: mapper,
		logger: logger,
	}
}

// SyncProduct pulls a product and its variants from the marketplace and
// upserts them. Everything passes through the domain layer first, so a
// malformed payload is rejected before any row is written.
func (s *ProductService) SyncProduct(ctx context.Context, productID string) (*domain.ProductAggregate, error) {
	payload, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		if stockx.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	product, err := s.mapper.ProductFromPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to map product %s: %w", productID, err)
	}

	variantPayloads, err := s.client.GetProductVariants(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}

	variants := make([]*domain.Variant, 0, len(variantPayloads))
	for _, vp := range variantPayloads {
		variant, err := s.mapper.VariantFromPayload(vp)
		if err != nil {
			return nil, fmt.Errorf("failed to map variant for product %s: %w", productID, err)
		}
		variants = append(variants, variant)
	}

	aggregate, err := domain.NewProductAggregate(product, variants)
	if err != nil {
		return nil, err
	}

	if err := s.persistAggregate(aggregate); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": productID,
		"variants":   aggregate.VariantCount(),
	}).Info("Product synced from marketplace")

	return aggregate, nil
}

func (s *ProductService) persistAggregate(aggregate *domain.ProductAggregate) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		row := productToModel(aggregate.Product())
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).Create(row).Error; err != nil {
			return fmt.Errorf("failed to upsert product: %w", err)
		}

		for _, variant := range aggregate.Variants() {
			variantRow := variantToModel(variant)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "variant_id"}},
				UpdateAll: true,
			}).Create(variantRow).Error; err != nil {
				return fmt.Errorf("failed to upsert variant: %w", err)
			}
		}
		return nil
	})
}

// SearchCatalog queries the marketplace catalog directly without persisting.
func (s *ProductService) SearchCatalog(ctx context.Context, query string, pageNumber, pageSize int) ([]*domain.Product, error) {
	payloads, err := s.client.SearchProducts(ctx, query, pageNumber, pageSize)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}

	products := make([]*domain.Product, 0, len(payloads))
	for _, payload := range payloads {
		product, err := s.mapper.ProductFromPayload(payload)
		if err != nil {
			// Skip entries the catalog returns in a shape we cannot map.
			s.logger.WithError(err).Warn("Skipping unmappable catalog entry")
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// GetProduct loads a stored product with its variants and each variant's
// latest market data snapshot, assembled as an aggregate.
func (s *ProductService) GetProduct(productID string) (*domain.ProductAggregate, error) {
	var row models.Product
	if err := s.db.Where("product_id = ?", productID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product, err := productFromModel(&row)
	if err != nil {
		return nil, fmt.Errorf("stored product %s failed validation: %w", productID, err)
	}

	var variantRows []models.Variant
	if err := s.db.Where("product_id = ?", productID).
		Order("variant_value ASC").Find(&variantRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}

	variants := make([]*domain.Variant, 0, len(variantRows))
	for i := range variantRows {
		snapshot, err := s.latestSnapshot(variantRows[i].VariantID)
		if err != nil {
			return nil, err
		}
		variant, err := variantFromModel(&variantRows[i], snapshot)
		if err != nil {
			return nil, fmt.Errorf("stored variant %s failed validation: %w", variantRows[i].VariantID, err)
		}
		variants = append(variants, variant)
	}

	return domain.NewProductAggregate(product, variants)
}

func (s *ProductService) latestSnapshot(variantID string) (*models.MarketDataSnapshot, error) {
	var snapshot models.MarketDataSnapshot
	err := s.db.Where("variant_id = ?", variantID).
		Order("snapshot_at DESC").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load market data snapshot: %w", err)
	}
	return &snapshot, nil
}

// SearchProducts filters stored products by the catalog query surface
// (brand, style code, free text) with pagination.
func (s *ProductService) SearchProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}
	if params.StyleID != "" {
		query = query.Where("style_id = ?", strings.ToUpper(params.StyleID))
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(brand) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "brand", "release_date"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}
