package domain

import (
	"fmt"
	"sort"
	"strings"
)

type BountyID string
type UserID string

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return 3
	}
}

type BountyStatus string

const (
	BountyStatusOpen   BountyStatus = "open"
	BountyStatusClosed BountyStatus = "closed"
)

type Bounty struct {
	ID         BountyID     `json:"id"`
	Title      string       `json:"title"`
	Brand      string       `json:"brand,omitempty"`
	Reward     float64      `json:"reward"`
	Difficulty Difficulty   `json:"difficulty"`
	Status     BountyStatus `json:"status"`
}

func (b Bounty) Validate() error {
	if strings.TrimSpace(string(b.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if b.Reward < 0 {
		return fmt.Errorf("reward must not be negative")
	}
	switch b.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unsupported difficulty %q", b.Difficulty)
	}

	return nil
}

// EasiestBounty picks the lowest difficulty, then the highest reward.
func EasiestBounty(bounties []Bounty) (Bounty, bool) {
	if len(bounties) == 0 {
		return Bounty{}, false
	}

	sorted := make([]Bounty, len(bounties))
	copy(sorted, bounties)
	sort.SliceStable(sorted, func(i, j int) bool {
		left, right := sorted[i].Difficulty.rank(), sorted[j].Difficulty.rank()
		if left == right {
			return sorted[i].Reward > sorted[j].Reward
		}
		return left < right
	})

	return sorted[0], true
}

type Profile struct {
	UserID     UserID `json:"userId"`
	Username   string `json:"username"`
	Reputation int    `json:"reputation"`
}

// ChatContext is what a responder knows about the person it is talking to.
type ChatContext struct {
	UserID       UserID
	Username     string
	Reputation   int
	Balance      float64
	OpenBounties []Bounty
	History      []Message
}

func (c ChatContext) Guest() bool {
	return c.UserID == ""
}
