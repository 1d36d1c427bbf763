package toml

import (
	"fmt"

	"github.com/bnema/gigpulse/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int            `toml:"version"`
	Users    []userSchema   `toml:"users"`
	Bounties []bountySchema `toml:"bounties"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	for i := range s.Bounties {
		if s.Bounties[i].Status == "" {
			s.Bounties[i].Status = string(domain.BountyStatusOpen)
		}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported marketplace schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type userSchema struct {
	ID         string  `toml:"id"`
	Username   string  `toml:"username"`
	Reputation int     `toml:"reputation"`
	Balance    float64 `toml:"balance"`
}

type bountySchema struct {
	ID         string  `toml:"id"`
	Title      string  `toml:"title"`
	Brand      string  `toml:"brand,omitempty"`
	Reward     float64 `toml:"reward"`
	Difficulty string  `toml:"difficulty"`
	Status     string  `toml:"status"`
}

// demoSchema is served while no marketplace file exists yet.
func demoSchema() fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Users: []userSchema{
			{ID: "creator-1", Username: "lumen", Reputation: 87, Balance: 1240.5},
			{ID: "creator-2", Username: "sonicloop", Reputation: 42, Balance: 310},
		},
		Bounties: []bountySchema{
			{ID: "b-101", Title: "15s unboxing reel", Brand: "Orbit Energy", Reward: 300, Difficulty: "hard", Status: "open"},
			{ID: "b-102", Title: "Animated logo sting", Brand: "Helix Media", Reward: 80, Difficulty: "easy", Status: "open"},
			{ID: "b-103", Title: "Podcast highlight clips", Brand: "Pinecrest Labs", Reward: 150, Difficulty: "medium", Status: "open"},
			{ID: "b-104", Title: "Launch thread copy", Brand: "Brightline Apparel", Reward: 60, Difficulty: "easy", Status: "closed"},
		},
	}
}
