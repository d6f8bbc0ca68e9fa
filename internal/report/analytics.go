package report

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed analytics.yaml
var defaultAnalyticsYAML []byte

// Analytics holds the structured fields that accompany every summary. They are
// configuration, not derived from the model output.
type Analytics struct {
	KeyInsights      []string          `yaml:"key_insights"`
	Segments         []Segment         `yaml:"segments"`
	RegionalTrends   []RegionalTrend   `yaml:"regional_trends"`
	IngredientTrends []IngredientTrend `yaml:"ingredient_trends"`
	ConsumerBehavior []string          `yaml:"consumer_behavior"`
}

func DefaultAnalytics() (Analytics, error) {
	return ParseAnalytics(defaultAnalyticsYAML)
}

// LoadAnalytics reads an analytics file; an empty path yields the built-in set.
func LoadAnalytics(path string) (Analytics, error) {
	if path == "" {
		return DefaultAnalytics()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Analytics{}, err
	}
	analytics, err := ParseAnalytics(data)
	if err != nil {
		return Analytics{}, fmt.Errorf("%s: %w", path, err)
	}
	return analytics, nil
}

func ParseAnalytics(data []byte) (Analytics, error) {
	var analytics Analytics
	if err := yaml.Unmarshal(data, &analytics); err != nil {
		return Analytics{}, fmt.Errorf("parse analytics: %w", err)
	}
	for _, trend := range analytics.IngredientTrends {
		if !trend.Momentum.Valid() {
			return Analytics{}, fmt.Errorf("ingredient %q: missing momentum", trend.Name)
		}
	}
	return analytics, nil
}

// Record assembles a result from a summary, its sources and the analytics constants.
// Slices are copied so records never share backing arrays with the configuration.
func (a Analytics) Record(summary string, sources []Source) Record {
	regional := make([]RegionalTrend, len(a.RegionalTrends))
	for i, trend := range a.RegionalTrends {
		trend.KeyBrands = append([]string{}, trend.KeyBrands...)
		regional[i] = trend
	}
	return Record{
		Summary:          summary,
		KeyInsights:      append([]string{}, a.KeyInsights...),
		Segments:         append([]Segment{}, a.Segments...),
		RegionalTrends:   regional,
		IngredientTrends: append([]IngredientTrend{}, a.IngredientTrends...),
		ConsumerBehavior: append([]string{}, a.ConsumerBehavior...),
		Sources:          append([]Source{}, sources...),
	}
}
