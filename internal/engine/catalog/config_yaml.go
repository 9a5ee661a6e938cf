package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rkatz/tcgsim/internal/engine"
)

// configOverrides mirrors engine.Config's fields so a YAML file only has to
// set what it wants to change; the zero value of every field not present in
// the document means "leave DefaultConfig's value alone".
type configOverrides struct {
	RandomFirstPlayer      *bool `yaml:"random_first_player"`
	InitialHandSize        *int  `yaml:"initial_hand_size"`
	InitialCardDraw        *int  `yaml:"initial_card_draw"`
	InitialDiceNumber      *int  `yaml:"initial_dice_number"`
	InitialDiceRerollTimes *int  `yaml:"initial_dice_reroll_times"`
	CardNumber             *int  `yaml:"card_number"`
	MaxSameCardNumber      *int  `yaml:"max_same_card_number"`
	CharacterNumber        *int  `yaml:"character_number"`
	MaxRoundNumber         *int  `yaml:"max_round_number"`
	MaxHandSize            *int  `yaml:"max_hand_size"`
	MaxDiceNumber          *int  `yaml:"max_dice_number"`
	MaxSummonNumber        *int  `yaml:"max_summon_number"`
	MaxSupportNumber       *int  `yaml:"max_support_number"`
}

// LoadConfigYAML reads a YAML file of Config overrides, applied on top of
// this catalog's DefaultConfig, the way the teacher's internal/web loaded a
// deck file's YAML body (gopkg.in/yaml.v3) before handing it to the duel.
func LoadConfigYAML(path string) (engine.Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("catalog: read config %q: %w", path, err)
	}
	var ov configOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return cfg, fmt.Errorf("catalog: parse config %q: %w", path, err)
	}
	ov.apply(&cfg)
	return cfg, nil
}

func (ov configOverrides) apply(cfg *engine.Config) {
	if ov.RandomFirstPlayer != nil {
		cfg.RandomFirstPlayer = *ov.RandomFirstPlayer
	}
	if ov.InitialHandSize != nil {
		cfg.InitialHandSize = *ov.InitialHandSize
	}
	if ov.InitialCardDraw != nil {
		cfg.InitialCardDraw = *ov.InitialCardDraw
	}
	if ov.InitialDiceNumber != nil {
		cfg.InitialDiceNumber = *ov.InitialDiceNumber
	}
	if ov.InitialDiceRerollTimes != nil {
		cfg.InitialDiceRerollTimes = *ov.InitialDiceRerollTimes
	}
	if ov.CardNumber != nil {
		cfg.CardNumber = *ov.CardNumber
	}
	if ov.MaxSameCardNumber != nil {
		cfg.MaxSameCardNumber = *ov.MaxSameCardNumber
	}
	if ov.CharacterNumber != nil {
		cfg.CharacterNumber = *ov.CharacterNumber
	}
	if ov.MaxRoundNumber != nil {
		cfg.MaxRoundNumber = *ov.MaxRoundNumber
	}
	if ov.MaxHandSize != nil {
		cfg.MaxHandSize = *ov.MaxHandSize
	}
	if ov.MaxDiceNumber != nil {
		cfg.MaxDiceNumber = *ov.MaxDiceNumber
	}
	if ov.MaxSummonNumber != nil {
		cfg.MaxSummonNumber = *ov.MaxSummonNumber
	}
	if ov.MaxSupportNumber != nil {
		cfg.MaxSupportNumber = *ov.MaxSupportNumber
	}
}
