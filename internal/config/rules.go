package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules carries the corpus-tuning tables for routing and reranking. The
// built-in defaults match the shipped curriculum; a YAML file can overlay
// them without a rebuild.
type Rules struct {
	Synonyms         map[string]string   `yaml:"synonyms"`
	TechniqueAliases map[string][]string `yaml:"technique_aliases"`
	TierBonuses      TierBonuses         `yaml:"tier_bonuses"`
	WeakThreshold    float64             `yaml:"weak_threshold"`
}

// TierBonuses are the additive score bonuses per priority tier. Validation
// requires the strict ordering P1 > P2 > P3 >= 0.
type TierBonuses struct {
	P1 float64 `yaml:"p1"`
	P2 float64 `yaml:"p2"`
	P3 float64 `yaml:"p3"`
}

// DefaultRules returns the built-in routing tables.
func DefaultRules() Rules {
	return Rules{
		Synonyms: map[string]string{
			"throw":       "nage",
			"throws":      "nage",
			"choke":       "jime",
			"chokes":      "jime",
			"strangle":    "jime",
			"strangles":   "jime",
			"kick":        "geri",
			"kicks":       "geri",
			"punch":       "tsuki",
			"punches":     "tsuki",
			"lock":        "gyaku",
			"locks":       "gyaku",
			"roll":        "ukemi",
			"rolls":       "ukemi",
			"breakfall":   "ukemi",
			"breakfalls":  "ukemi",
			"stance":      "kamae",
			"stances":     "kamae",
			"school":      "ryu",
			"schools":     "ryu",
			"grandmaster": "soke",
			"headmaster":  "soke",
		},
		TechniqueAliases: map[string][]string{
			"Omote Gyaku":     {"forward wrist lock", "outer wrist lock"},
			"Ura Gyaku":       {"reverse wrist lock", "inside wrist lock"},
			"Musha Dori":      {"warrior capture"},
			"Ganseki Nage":    {"rock throw"},
			"Jumonji no Kata": {"jumonji", "cross form"},
			"Oni Kudaki":      {"ogre crusher", "demon crusher"},
		},
		TierBonuses:   TierBonuses{P1: 0.40, P2: 0.20, P3: 0},
		WeakThreshold: 0.35,
	}
}

// LoadRules returns the defaults overlaid with the YAML file at path, when
// path is non-empty. Absent keys keep their default values; synonym entries
// merge key by key.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// Validate enforces the invariants the reranker and normalizer rely on.
func (r Rules) Validate() error {
	b := r.TierBonuses
	if !(b.P1 > b.P2 && b.P2 > b.P3 && b.P3 >= 0) {
		return fmt.Errorf("tier bonuses must satisfy p1 > p2 > p3 >= 0, got %.3f/%.3f/%.3f", b.P1, b.P2, b.P3)
	}
	if r.WeakThreshold < 0 {
		return fmt.Errorf("weak threshold must be >= 0, got %.3f", r.WeakThreshold)
	}
	for from, to := range r.Synonyms {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("synonym entries must be non-empty, got %q -> %q", from, to)
		}
	}
	for name, aliases := range r.TechniqueAliases {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("technique alias entries need a technique name")
		}
		for _, alias := range aliases {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("technique %q has an empty alias", name)
			}
		}
	}
	return nil
}
