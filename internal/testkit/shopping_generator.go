// Package testkit generates deterministic demo datasets for trying the
// report pipeline without real data.
package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"statreport/domain/dataset"
)

// ShoppingGeneratorConfig configures the shopping data generator
type ShoppingGeneratorConfig struct {
	OrderCount  int     `json:"order_count" yaml:"order_count"`
	MissingRate float64 `json:"missing_rate" yaml:"missing_rate"`
	Seed        int64   `json:"seed" yaml:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for shopping data generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		OrderCount:  500,
		MissingRate: 0.05,
		Seed:        42,
	}
}

// Column names of the generated table, in column order.
const (
	ColumnCountry     = "country"
	ColumnChannel     = "signup_channel"
	ColumnLoyaltyTier = "loyalty_tier"
	ColumnTenureDays  = "tenure_days"
	ColumnItemCount   = "item_count"
	ColumnOrderTotal  = "order_total"
	ColumnDiscountPct = "discount_pct"
	ColumnRiskScore   = "risk_score"
	ColumnReturned    = "returned"
)

var (
	countries = []string{"TR", "DE", "NL", "US", "GB"}
	channels  = []string{"organic", "paid_search", "social", "referral"}
)

// ShoppingDataGenerator generates one row per order
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new shopping data generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	if config.OrderCount < 0 {
		config.OrderCount = 0
	}
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds the order table. The same config always yields the
// same dataset.
func (g *ShoppingDataGenerator) Generate() (*dataset.Dataset, error) {
	n := g.config.OrderCount
	country := make([]string, n)
	channel := make([]string, n)
	tier := make([]string, n)
	returned := make([]string, n)

	tenure := make([]float64, n)
	items := make([]float64, n)
	total := make([]float64, n)
	discount := make([]float64, n)
	risk := make([]float64, n)

	for i := 0; i < n; i++ {
		tenure[i] = math.Floor(g.rng.ExpFloat64() * 120)
		items[i] = float64(1 + g.rng.Intn(8))
		discount[i] = float64(5 * g.rng.Intn(5))
		// basket value grows with item count and shrinks with the discount
		unit := 18 + g.rng.NormFloat64()*4
		total[i] = round2(math.Max(1, items[i]*unit*(1-discount[i]/100)))
		risk[i] = round2(g.rng.Float64() * 0.6)

		country[i] = countries[g.rng.Intn(len(countries))]
		channel[i] = channels[g.rng.Intn(len(channels))]
		tier[i] = loyaltyTier(tenure[i])
		returned[i] = "no"
		if g.rng.Float64() < 0.05+risk[i]/5 {
			returned[i] = "yes"
		}

		if g.drop() {
			country[i] = ""
		}
		if g.drop() {
			channel[i] = ""
		}
		if g.drop() {
			risk[i] = math.NaN()
		}
		if g.drop() {
			discount[i] = math.NaN()
		}
	}

	ds, err := dataset.New("shopping",
		dataset.NewCategorical(ColumnCountry, country, nil),
		dataset.NewCategorical(ColumnChannel, channel, nil),
		dataset.NewCategorical(ColumnLoyaltyTier, tier, nil),
		dataset.NewNumeric(ColumnTenureDays, tenure),
		dataset.NewNumeric(ColumnItemCount, items),
		dataset.NewNumeric(ColumnOrderTotal, total),
		dataset.NewNumeric(ColumnDiscountPct, discount),
		dataset.NewNumeric(ColumnRiskScore, risk),
		dataset.NewCategorical(ColumnReturned, returned, nil),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build shopping dataset: %w", err)
	}
	return ds, nil
}

func (g *ShoppingDataGenerator) drop() bool {
	return g.config.MissingRate > 0 && g.rng.Float64() < g.config.MissingRate
}

func loyaltyTier(tenureDays float64) string {
	switch {
	case tenureDays > 180:
		return "gold"
	case tenureDays > 90:
		return "silver"
	case tenureDays > 30:
		return "bronze"
	}
	return "new"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
