// internal/services/pricing_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/repricer-backend/internal/config"
	"github.com/javajoker/repricer-backend/internal/domain"
	"github.com/javajoker/repricer-backend/internal/models"
	"github.com/javajoker/repricer-backend/internal/utils"
)

var ErrInsufficientPricingData = errors.New("not enough historical data to price")

type PricingService struct {
	db     *gorm.DB
	cfg    config.PricingConfig
	clock  domain.Clock
	logger *logrus.Logger
}

type PriceRecommendation struct {
	VariantID       string          `json:"variant_id"`
	OptimalPrice    domain.Money    `json:"-"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	AveragePrice    decimal.Decimal `json:"average_price"`
	MarginPercent   float64         `json:"margin_percent"`
	SampleCount     int             `json:"sample_count"`
	Confidence      float64         `json:"confidence"`
	LookbackDays    int             `json:"lookback_days"`
	ClampedToBounds bool            `json:"clamped_to_bounds"`
}

type PriceStatistics struct {
	VariantID string          `json:"variant_id"`
	Min       decimal.Decimal `json:"min"`
	Max       decimal.Decimal `json:"max"`
	Average   decimal.Decimal `json:"average"`
	Count     int64           `json:"count"`
}

type RecordSaleRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Price     string `json:"price" validate:"required,decimal_amount"`
	Currency  string `json:"currency,omitempty" validate:"omitempty,currency_code"`
	SaleDate  string `json:"sale_date" validate:"required"`
	Size      string `json:"size,omitempty"`
	OrderType string `json:"order_type,omitempty"`
}

func NewPricingService(db *gorm.DB, cfg config.PricingConfig, clock domain.Clock, logger *logrus.Logger) *PricingService {
	return &PricingService{
		db:     db,
		cfg:    cfg,
		clock:  clock,
		logger: logger,
	}
}

// CalculateOptimalPrice averages recorded sales inside the lookback window,
// applies the margin and clamps the result to the configured thresholds.
// marginPercent and lookbackDays of zero fall back to the configured defaults.
func (s *PricingService) CalculateOptimalPrice(variantID string, marginPercent float64, lookbackDays int) (*PriceRecommendation, error) {
	if marginPercent == 0 {
		marginPercent = s.cfg.DefaultMarginPercent
	}
	if lookbackDays <= 0 {
		lookbackDays = s.cfg.DefaultLookbackDays
	}

	now := s.clock.Now()
	since := now.AddDate(0, 0, -lookbackDays)

	var rows []models.HistoricalPrice
	if err := s.db.Where("variant_id = ? AND sale_date >= ?", variantID, since).
		Order("sale_date DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load historical prices: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrInsufficientPricingData
	}

	currency := rows[0].Currency
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Price)
	}
	average := sum.Div(decimal.NewFromInt(int64(len(rows))))

	margin := decimal.NewFromFloat(1 + marginPercent/100)
	optimal := average.Mul(margin).Round(2)

	min := decimal.NewFromFloat(s.cfg.MinPriceThreshold)
	max := decimal.NewFromFloat(s.cfg.MaxPriceThreshold)
	clamped := false
	if optimal.LessThan(min) {
		optimal = min
		clamped = true
	}
	if optimal.GreaterThan(max) {
		optimal = max
		clamped = true
	}

	money, err := domain.NewMoney(optimal, currency)
	if err != nil {
		return nil, fmt.Errorf("computed price is invalid: %w", err)
	}

	rec := &PriceRecommendation{
		VariantID:       variantID,
		OptimalPrice:    money,
		Amount:          optimal,
		Currency:        currency,
		AveragePrice:    average.Round(2),
		MarginPercent:   marginPercent,
		SampleCount:     len(rows),
		Confidence:      confidenceScore(rows, average),
		LookbackDays:    lookbackDays,
		ClampedToBounds: clamped,
	}

	s.logger.WithFields(logrus.Fields{
		"variant_id": variantID,
		"optimal":    optimal.String(),
		"samples":    len(rows),
		"confidence": rec.Confidence,
	}).Debug("Optimal price calculated")

	return rec, nil
}

// confidenceScore grows with sample size and shrinks with price dispersion.
// Result is in [0, 1].
func confidenceScore(rows []models.HistoricalPrice, average decimal.Decimal) float64 {
	sampleScore := float64(len(rows)) / 30.0
	if sampleScore > 1 {
		sampleScore = 1
	}

	if average.IsZero() || len(rows) < 2 {
		return sampleScore * 0.5
	}

	// Mean absolute deviation relative to the average.
	sumDev := decimal.Zero
	for _, row := range rows {
		sumDev = sumDev.Add(row.Price.Sub(average).Abs())
	}
	meanDev := sumDev.Div(decimal.NewFromInt(int64(len(rows))))
	dispersion, _ := meanDev.Div(average).Float64()

	stabilityScore := 1 - dispersion
	if stabilityScore < 0 {
		stabilityScore = 0
	}

	return sampleScore*0.5 + stabilityScore*0.5
}

// RecordSale stores one historical sale after domain validation.
func (s *PricingService) RecordSale(req *RecordSaleRequest) (*models.HistoricalPrice, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	price, err := domain.NewMoneyFromString(req.Price, currency)
	if err != nil {
		return nil, err
	}

	saleDate, err := time.Parse(time.RFC3339, req.SaleDate)
	if err != nil {
		if saleDate, err = time.Parse("2006-01-02", req.SaleDate); err != nil {
			return nil, fmt.Errorf("invalid sale_date %q", req.SaleDate)
		}
	}

	sale, err := domain.NewHistoricalSale(saleDate, price.Amount(), req.VariantID, true)
	if err != nil {
		return nil, err
	}

	row := &models.HistoricalPrice{
		VariantID: req.VariantID,
		ProductID: req.ProductID,
		Price:     sale.Price(),
		Currency:  price.CurrencyCode(),
		SaleDate:  sale.Date(),
		Size:      req.Size,
		OrderType: req.OrderType,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to store historical price: %w", err)
	}
	return row, nil
}

// GetPriceStatistics aggregates min/avg/max/count over a time range.
func (s *PricingService) GetPriceStatistics(variantID string, r domain.TimeRange) (*PriceStatistics, error) {
	var stats struct {
		Min   decimal.Decimal
		Max   decimal.Decimal
		Avg   decimal.Decimal
		Count int64
	}

	err := s.db.Model(&models.HistoricalPrice{}).
		Where("variant_id = ? AND sale_date BETWEEN ? AND ?", variantID, r.Start(), r.End()).
		Select("COALESCE(MIN(price), 0) as min, COALESCE(MAX(price), 0) as max, COALESCE(AVG(price), 0) as avg, COUNT(*) as count").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate prices: %w", err)
	}
	if stats.Count == 0 {
		return nil, ErrInsufficientPricingData
	}

	return &PriceStatistics{
		VariantID: variantID,
		Min:       stats.Min,
		Max:       stats.Max,
		Average:   stats.Avg.Round(2),
		Count:     stats.Count,
	}, nil
}
