package domain

// EngineSnapshot is a read-only copy of simulator state at one instant.
type EngineSnapshot struct {
	Countdown   int           `json:"countdown"`
	Squad       []SquadMember `json:"squad"`
	Ledger      RevenueLedger `json:"ledger"`
	OwnedAssets []string      `json:"ownedAssets"`
}

func (s EngineSnapshot) Clone() EngineSnapshot {
	owned := make([]string, len(s.OwnedAssets))
	copy(owned, s.OwnedAssets)

	return EngineSnapshot{
		Countdown:   s.Countdown,
		Squad:       CloneSquad(s.Squad),
		Ledger:      s.Ledger.Clone(),
		OwnedAssets: owned,
	}
}
