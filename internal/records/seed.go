package records

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedData holds the initial contents of every dashboard collection.
type SeedData struct {
	Alerts          []Alert               `yaml:"alerts"`
	Databases       []DatabaseConnection  `yaml:"databases"`
	Recommendations []IndexRecommendation `yaml:"recommendations"`
	Reports         []Report              `yaml:"reports"`
	Team            []TeamMember          `yaml:"team"`
	Performance     []PerformancePoint    `yaml:"performance"`
	EngineShare     []EngineShare         `yaml:"engine_share"`
	SlowQueries     []SlowQuery           `yaml:"slow_queries"`
}

// Seed parses the embedded seed file. Each call returns fresh slices, so
// mutations applied to one caller's collections never leak into another's.
func Seed() (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("records: cannot parse embedded seed data: %w", err)
	}
	return &data, nil
}

// MustSeed is Seed for initialisation paths where the embedded data is known
// to be well-formed; it panics on parse failure.
func MustSeed() *SeedData {
	data, err := Seed()
	if err != nil {
		panic(err)
	}
	return data
}
