package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	StartingWallet int `yaml:"starting_wallet"`
	StartingBank   int `yaml:"starting_bank"`

	FirstSpawn   [3]float64 `yaml:"first_spawn"`
	FirstHeading float64    `yaml:"first_heading"`

	MaxWeight float64 `yaml:"max_weight"`

	Vitals Vitals `yaml:"vitals"`
}

type Vitals struct {
	TickSecs      int `yaml:"tick_secs"`
	HungerPerTick int `yaml:"hunger_per_tick"`
	ThirstPerTick int `yaml:"thirst_per_tick"`
}

func Default() Tuning {
	return Tuning{
		StartingWallet: 500,
		StartingBank:   1000,
		FirstSpawn:     [3]float64{-888.655, -2313.017, 6.45},
		FirstHeading:   90,
		MaxWeight:      50,
		Vitals: Vitals{
			TickSecs:      60,
			HungerPerTick: 1,
			ThirstPerTick: 1,
		},
	}
}

func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.MaxWeight <= 0 {
		return t, fmt.Errorf("tuning.yaml: max_weight must be > 0")
	}
	return t, nil
}
