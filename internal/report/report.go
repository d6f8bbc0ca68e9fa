package report

import "fmt"

// Momentum is the direction label of an ingredient trend.
type Momentum string

const (
	MomentumUp     Momentum = "up"
	MomentumStable Momentum = "stable"
	MomentumDown   Momentum = "down"
)

func (m Momentum) Valid() bool {
	switch m {
	case MomentumUp, MomentumStable, MomentumDown:
		return true
	default:
		return false
	}
}

func (m *Momentum) UnmarshalText(text []byte) error {
	value := Momentum(text)
	if !value.Valid() {
		return fmt.Errorf("invalid momentum %q: want up, stable or down", string(text))
	}
	*m = value
	return nil
}

type Segment struct {
	Name   string  `json:"name" yaml:"name"`
	Value  float64 `json:"value" yaml:"value"`
	Growth string  `json:"growth" yaml:"growth"`
}

type RegionalTrend struct {
	Region      string   `json:"region" yaml:"region"`
	Description string   `json:"description" yaml:"description"`
	KeyBrands   []string `json:"key_brands" yaml:"key_brands"`
}

type IngredientTrend struct {
	Name     string   `json:"name" yaml:"name"`
	Momentum Momentum `json:"momentum" yaml:"momentum"`
	Reason   string   `json:"reason" yaml:"reason"`
}

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Record is the payload produced by one successful analysis.
type Record struct {
	Summary          string            `json:"summary"`
	KeyInsights      []string          `json:"key_insights"`
	Segments         []Segment         `json:"segments"`
	RegionalTrends   []RegionalTrend   `json:"regional_trends"`
	IngredientTrends []IngredientTrend `json:"ingredient_trends"`
	ConsumerBehavior []string          `json:"consumer_behavior"`
	Sources          []Source          `json:"sources"`
}
