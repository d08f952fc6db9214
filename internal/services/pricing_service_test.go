// internal/services/pricing_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/javajoker/repricer-backend/internal/models"
)

func salesAt(prices ...string) []models.HistoricalPrice {
	rows := make([]models.HistoricalPrice, 0, len(prices))
	for _, p := range prices {
		rows = append(rows, models.HistoricalPrice{Price: decimal.RequireFromString(p)})
	}
	return rows
}

func average(rows []models.HistoricalPrice) decimal.Decimal {
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(rows))))
}

func TestConfidenceScoreGrowsWithSamples(t *testing.T) {
	few := salesAt("100", "100", "100")
	many := salesAt("100", "100", "100", "100", "100", "100", "100", "100",
		"100", "100", "100", "100", "100", "100", "100", "100")

	fewScore := confidenceScore(few, average(few))
	manyScore := confidenceScore(many, average(many))

	assert.Greater(t, manyScore, fewScore)
}

func TestConfidenceScoreDropsWithDispersion(t *testing.T) {
	stable := salesAt("100", "101", "99", "100", "100")
	volatile := salesAt("40", "180", "60", "150", "70")

	stableScore := confidenceScore(stable, average(stable))
	volatileScore := confidenceScore(volatile, average(volatile))

	assert.Greater(t, stableScore, volatileScore)
}

func TestConfidenceScoreBounds(t *testing.T) {
	one := salesAt("100")
	score := confidenceScore(one, average(one))
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	many := salesAt("100", "100", "100", "100", "100", "100", "100", "100",
		"100", "100", "100", "100", "100", "100", "100", "100", "100", "100",
		"100", "100", "100", "100", "100", "100", "100", "100", "100", "100",
		"100", "100", "100", "100")
	assert.LessOrEqual(t, confidenceScore(many, average(many)), 1.0)
}
