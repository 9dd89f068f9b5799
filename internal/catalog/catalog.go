// Package catalog describes the static, read-only stage content consumed by
// the progression engine and the sequence puzzles.
// Catalogs are declarative: each stage is an ordered list of item ids plus
// the reward unlocked when the order is reproduced.
package catalog

import "time"

// Reward is the payload unlocked when a stage is completed.
type Reward struct {
	Title string `yaml:"title" toml:"title"`
	Fact  string `yaml:"fact" toml:"fact"`
}

// Item is one selectable element of a stage puzzle.
type Item struct {
	ID     string `yaml:"id" toml:"id"`
	Name   string `yaml:"name" toml:"name"`
	Detail string `yaml:"detail,omitempty" toml:"detail"`
	Icon   string `yaml:"icon,omitempty" toml:"icon"`
}

// Stage is a single puzzle unit in the progression.
type Stage struct {
	ID                int      `yaml:"id" toml:"id"`
	Title             string   `yaml:"title" toml:"title"`
	Setting           string   `yaml:"setting,omitempty" toml:"setting"`
	Description       string   `yaml:"description,omitempty" toml:"description"`
	HistoricalContext string   `yaml:"historical_context,omitempty" toml:"historical_context"`
	Objectives        []string `yaml:"objectives,omitempty" toml:"objectives"`
	Prompt            string   `yaml:"prompt,omitempty" toml:"prompt"`
	Items             []Item   `yaml:"items" toml:"items"`
	Solution          []string `yaml:"solution" toml:"solution"`
	Features          []string `yaml:"features,omitempty" toml:"features"`
	Hint              string   `yaml:"hint,omitempty" toml:"hint"`
	Reward            Reward   `yaml:"reward" toml:"reward"`
	CompleteDelayMS   int      `yaml:"complete_delay_ms,omitempty" toml:"complete_delay_ms"`
}

// CompleteDelay returns the stage-specific pause before completion is applied.
// Zero means the caller's default applies.
func (s Stage) CompleteDelay() time.Duration {
	if s.CompleteDelayMS <= 0 {
		return 0
	}
	return time.Duration(s.CompleteDelayMS) * time.Millisecond
}

// Item looks up an item by id.
func (s Stage) Item(id string) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Catalog is an ordered list of stages.
type Catalog struct {
	ID     string  `yaml:"id" toml:"id"`
	Title  string  `yaml:"title" toml:"title"`
	Stages []Stage `yaml:"stages" toml:"stages"`
}

// StageCount returns the number of stages.
func (c Catalog) StageCount() int {
	return len(c.Stages)
}

// Stage returns the stage at the given index (0-based).
func (c Catalog) Stage(index int) (Stage, bool) {
	if index < 0 || index >= len(c.Stages) {
		return Stage{}, false
	}
	return c.Stages[index], true
}
