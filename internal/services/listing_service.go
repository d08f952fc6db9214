// internal/services/listing_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/repricer-backend/internal/database"
	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/models"
	"github.com/javajoker/repricer-backend/internal/stockx"
	"github.com/javajoker/repricer-backend/internal/utils"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingService struct {
	db     *gorm.DB
	client *stockx.Client
	mapper *stockx.Mapper
	clock  domain.Clock
	logger *logrus.Logger
}

type CreateListingRequest struct {
	VariantID     string `json:"variant_id" validate:"required"`
	ProductID     string `json:"product_id,omitempty"`
	Price         string `json:"price" validate:"required,decimal_amount"`
	Currency      string `json:"currency,omitempty" validate:"omitempty,currency_code"`
	InventoryType string `json:"inventory_type,omitempty"`
	Quantity      int    `json:"quantity,omitempty" validate:"omitempty,min=0,max=100"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

type BatchRepriceRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
	Price     string `json:"price" validate:"required,decimal_amount"`
	Currency  string `json:"currency,omitempty" validate:"omitempty,currency_code"`
}

func NewListingService(db *gorm.DB, client *stockx.Client, mapper *stockx.Mapper,
	clock domain.Clock, logger *logrus.Logger) *ListingService {
	return &ListingService{
		db:     db,
		client: client,
		mapper: mapper,
		clock:  clock,
		logger: logger,
	}
}

// ImportListings pulls a page of the seller's listings from the marketplace
// and upserts them. Unmappable entries fail the import; a payload the domain
// rejects is a contract change worth surfacing, not skipping.
func (s *ListingService) ImportListings(ctx context.Context, pageNumber, pageSize int) (int, error) {
	payloads, err := s.client.GetListings(ctx, pageNumber, pageSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	imported := 0
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for _, payload := range payloads {
			listing, err := s.mapper.ListingFromPayload(payload)
			if err != nil {
				return fmt.Errorf("failed to map listing: %w", err)
			}
			row := listingToModel(listing)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "listing_id"}},
				UpdateAll: true,
			}).Create(row).Error; err != nil {
				return fmt.Errorf("failed to upsert listing %s: %w", listing.ID(), err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithField("count", imported).Info("Listings imported from marketplace")
	return imported, nil
}

// CreateListing creates a local PENDING listing and mirrors it to the
// marketplace as an ask.
func (s *ListingService) CreateListing(ctx context.Context, req *CreateListingRequest) (*domain.Listing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	record := domain.Record{
		"listing_id": domain.NewListingID(),
		"variant_id": req.VariantID,
		"price":      req.Price,
		"status":     string(domain.ListingStatusPending),
	}
	if req.Currency != "" {
		record["currency_code"] = req.Currency
	}
	if req.ProductID != "" {
		record["product_id"] = req.ProductID
	}
	if req.InventoryType != "" {
		record["inventory_type"] = req.InventoryType
	}
	if req.Quantity > 0 {
		record["quantity"] = req.Quantity
	}
	if req.ExpiresAt != "" {
		record["expires_at"] = req.ExpiresAt
	}

	listing, err := domain.ListingFromStockXAPI(record)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(listingToModel(listing)).Error; err != nil {
		return nil, fmt.Errorf("failed to store listing: %w", err)
	}

	// Best effort mirror to the marketplace. The local row stays PENDING
	// until the ask is confirmed through a later import.
	payload := map[string]interface{}{
		"variantId":    req.VariantID,
		"amount":       req.Price,
		"currencyCode": listing.Price().CurrencyCode(),
	}
	if _, err := s.client.CreateListing(ctx, payload); err != nil {
		s.logger.WithError(err).WithField("listing_id", listing.ID()).
			Warn("Failed to mirror listing to marketplace")
	}

	return listing, nil
}

func (s *ListingService) GetListing(listingID string) (*domain.Listing, error) {
	var row models.Listing
	if err := s.db.Where("listing_id = ?", listingID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return listingFromModel(&row)
}

// GetListingsForVariant loads all listings of a variant as an aggregate.
func (s *ListingService) GetListingsForVariant(variantID string) (*domain.ListingAggregate, error) {
	vid, err := domain.NewVariantID(variantID)
	if err != nil {
		return nil, err
	}

	var rows []models.Listing
	if err := s.db.Where("variant_id = ?", variantID).
		Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	listings := make([]*domain.Listing, 0, len(rows))
	for i := range rows {
		listing, err := listingFromModel(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("stored listing %s failed validation: %w", rows[i].ListingID, err)
		}
		listings = append(listings, listing)
	}

	return domain.NewListingAggregate(vid, listings)
}

// Lifecycle transitions. Each loads the entity, applies the domain rule and
// persists only when the transition was legal.

func (s *ListingService) ActivateListing(listingID string) (*domain.Listing, error) {
	return s.transition(listingID, func(l *domain.Listing) error { return l.Activate() })
}

func (s *ListingService) MarkListingSold(listingID string) (*domain.Listing, error) {
	return s.transition(listingID, func(l *domain.Listing) error { return l.MarkAsSold() })
}

func (s *ListingService) CancelListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	listing, err := s.transition(listingID, func(l *domain.Listing) error { return l.Cancel() })
	if err != nil {
		return nil, err
	}

	if err := s.client.DeleteListing(ctx, listingID); err != nil && !stockx.IsNotFound(err) {
		s.logger.WithError(err).WithField("listing_id", listingID).
			Warn("Failed to delete listing on marketplace")
	}
	return listing, nil
}

func (s *ListingService) UpdateListingPrice(ctx context.Context, listingID string, price, currency string) (*domain.Listing, error) {
	if currency == "" {
		currency = "USD"
	}
	newPrice, err := domain.NewMoneyFromString(price, currency)
	if err != nil {
		return nil, err
	}

	listing, err := s.transition(listingID, func(l *domain.Listing) error { return l.UpdatePrice(newPrice) })
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"amount":       newPrice.Amount().String(),
		"currencyCode": newPrice.CurrencyCode(),
	}
	if _, err := s.client.UpdateListing(ctx, listingID, payload); err != nil {
		s.logger.WithError(err).WithField("listing_id", listingID).
			Warn("Failed to update listing price on marketplace")
	}
	return listing, nil
}

func (s *ListingService) UpdateListingQuantity(listingID string, quantity int) (*domain.Listing, error) {
	return s.transition(listingID, func(l *domain.Listing) error { return l.UpdateQuantity(quantity) })
}

func (s *ListingService) transition(listingID string, apply func(*domain.Listing) error) (*domain.Listing, error) {
	listing, err := s.GetListing(listingID)
	if err != nil {
		return nil, err
	}
	if err := apply(listing); err != nil {
		return nil, err
	}
	if err := s.save(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) save(listing *domain.Listing) error {
	row := listingToModel(listing)
	if err := s.db.Model(&models.Listing{}).
		Where("listing_id = ?", listing.ID()).
		Updates(map[string]interface{}{
			"price":      row.Price,
			"currency":   row.Currency,
			"status":     row.Status,
			"quantity":   row.Quantity,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to persist listing %s: %w", listing.ID(), err)
	}
	return nil
}

// ExpireDueListings sweeps stored PENDING and ACTIVE listings whose
// expiration time has passed and transitions them to EXPIRED.
func (s *ListingService) ExpireDueListings() (int, error) {
	now := s.clock.Now()

	var rows []models.Listing
	if err := s.db.Where("status IN ? AND expires_at IS NOT NULL AND expires_at <= ?",
		[]models.ListingStatus{models.ListingStatusPending, models.ListingStatusActive}, now).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to load expirable listings: %w", err)
	}

	expired := 0
	for i := range rows {
		listing, err := listingFromModel(&rows[i])
		if err != nil {
			s.logger.WithError(err).WithField("listing_id", rows[i].ListingID).
				Warn("Skipping invalid stored listing during expiry sweep")
			continue
		}
		if err := listing.Expire(now); err != nil {
			continue
		}
		if err := s.save(listing); err != nil {
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		s.logger.WithField("count", expired).Info("Expired due listings")
	}
	return expired, nil
}

// BatchReprice moves every modifiable listing of a variant to the target
// price. Listings in a terminal state are skipped, not failed; the batch
// record reports both counts and lands on PARTIAL when anything was skipped.
func (s *ListingService) BatchReprice(ctx context.Context, req *BatchRepriceRequest) (*models.BatchOperation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	target, err := domain.NewMoneyFromString(req.Price, currency)
	if err != nil {
		return nil, err
	}

	aggregate, err := s.GetListingsForVariant(req.VariantID)
	if err != nil {
		return nil, err
	}

	listingIDs := make(pq.StringArray, 0, aggregate.ListingCount())
	for _, listing := range aggregate.Listings() {
		listingIDs = append(listingIDs, listing.ID())
	}

	amount := target.Amount()
	started := s.clock.Now()
	op := &models.BatchOperation{
		OperationType: models.BatchOperationTypeReprice,
		Status:        models.BatchStatusProcessing,
		VariantID:     req.VariantID,
		ListingIDs:    listingIDs,
		TargetPrice:   &amount,
		Currency:      target.CurrencyCode(),
		StartedAt:     &started,
	}
	if err := s.db.Create(op).Error; err != nil {
		return nil, fmt.Errorf("failed to create batch operation: %w", err)
	}

	result := aggregate.UpdateAllPrices(target)

	var persistErr error
	for _, listing := range aggregate.Listings() {
		if !listing.IsModifiable() {
			continue
		}
		if err := s.save(listing); err != nil {
			persistErr = err
			break
		}
	}

	completed := s.clock.Now()
	op.UpdatedCount = result.Updated
	op.SkippedCount = result.Skipped
	op.CompletedAt = &completed
	switch {
	case persistErr != nil:
		op.Status = models.BatchStatusFailed
		op.ErrorDetail = models.JSONB{"error": persistErr.Error()}
	case result.Skipped > 0:
		op.Status = models.BatchStatusPartial
	default:
		op.Status = models.BatchStatusCompleted
	}

	if err := s.db.Save(op).Error; err != nil {
		return nil, fmt.Errorf("failed to finalize batch operation: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"variant_id": req.VariantID,
		"updated":    result.Updated,
		"skipped":    result.Skipped,
		"status":     op.Status,
	}).Info("Batch reprice finished")

	if persistErr != nil {
		return op, persistErr
	}

	// Mirror updated prices to the marketplace, best effort.
	for _, listing := range aggregate.ActiveListings() {
		payload := map[string]interface{}{
			"amount":       target.Amount().String(),
			"currencyCode": target.CurrencyCode(),
		}
		if _, err := s.client.UpdateListing(ctx, listing.ID(), payload); err != nil {
			s.logger.WithError(err).WithField("listing_id", listing.ID()).
				Warn("Failed to mirror repriced listing")
		}
	}

	return op, nil
}

// CancelAllActive cancels every ACTIVE listing of a variant and records the
// sweep as a batch operation.
func (s *ListingService) CancelAllActive(ctx context.Context, variantID string) (*models.BatchOperation, error) {
	aggregate, err := s.GetListingsForVariant(variantID)
	if err != nil {
		return nil, err
	}

	active := aggregate.ActiveListings()
	listingIDs := make(pq.StringArray, 0, len(active))
	for _, listing := range active {
		listingIDs = append(listingIDs, listing.ID())
	}

	started := s.clock.Now()
	op := &models.BatchOperation{
		OperationType: models.BatchOperationTypeCancel,
		Status:        models.BatchStatusProcessing,
		VariantID:     variantID,
		ListingIDs:    listingIDs,
		StartedAt:     &started,
	}
	if err := s.db.Create(op).Error; err != nil {
		return nil, fmt.Errorf("failed to create batch operation: %w", err)
	}

	cancelled := aggregate.CancelAllActive()
	var persistErr error
	for _, listing := range aggregate.Listings() {
		if listing.Status() != domain.ListingStatusCancelled {
			continue
		}
		if err := s.save(listing); err != nil {
			persistErr = err
			break
		}
		if err := s.client.DeleteListing(ctx, listing.ID()); err != nil && !stockx.IsNotFound(err) {
			s.logger.WithError(err).WithField("listing_id", listing.ID()).
				Warn("Failed to delete listing on marketplace")
		}
	}

	completed := s.clock.Now()
	op.UpdatedCount = cancelled
	op.CompletedAt = &completed
	if persistErr != nil {
		op.Status = models.BatchStatusFailed
		op.ErrorDetail = models.JSONB{"error": persistErr.Error()}
	} else {
		op.Status = models.BatchStatusCompleted
	}

	if err := s.db.Save(op).Error; err != nil {
		return nil, fmt.Errorf("failed to finalize batch operation: %w", err)
	}
	return op, persistErr
}

// GetBatchOperation returns one batch record by ID.
func (s *ListingService) GetBatchOperation(id string) (*models.BatchOperation, error) {
	var op models.BatchOperation
	if err := s.db.Where("id = ?", id).First(&op).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("batch operation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &op, nil
}
