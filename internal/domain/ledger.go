package domain

import (
	"math"
	"time"
)

// TransactionLogCap bounds RevenueLedger.TransactionLog.
const TransactionLogCap = 8

type LogEntryKind string

const (
	LogEntrySubscription LogEntryKind = "subscription"
	LogEntryBountyFee    LogEntryKind = "bountyFee"
	LogEntryAssetRoyalty LogEntryKind = "assetRoyalty"
)

var LogEntryKinds = []LogEntryKind{LogEntrySubscription, LogEntryBountyFee, LogEntryAssetRoyalty}

func (k LogEntryKind) Valid() bool {
	switch k {
	case LogEntrySubscription, LogEntryBountyFee, LogEntryAssetRoyalty:
		return true
	default:
		return false
	}
}

type LogEntry struct {
	ID               string       `json:"id"`
	Kind             LogEntryKind `json:"kind"`
	CounterpartyName string       `json:"counterpartyName,omitempty"`
	Amount           float64      `json:"amount"`
	DisplayAmount    string       `json:"displayAmount"`
	OccurredAt       time.Time    `json:"occurredAt"`
	OccurredAtLabel  string       `json:"occurredAtLabel"`
}

// DisplayCounterparty falls back to "creator" for royalties without a name.
func (e LogEntry) DisplayCounterparty() string {
	if e.CounterpartyName == "" && e.Kind == LogEntryAssetRoyalty {
		return "creator"
	}
	return e.CounterpartyName
}

type RevenueLedger struct {
	RecurringRevenue  float64    `json:"recurringRevenue"`
	TransactionFees   float64    `json:"transactionFees"`
	MarketplaceVolume float64    `json:"marketplaceVolume"`
	Velocity          int        `json:"velocity"`
	TransactionLog    []LogEntry `json:"transactionLog"`
}

// Record books entry into the matching accumulator, nudges velocity and
// prepends the entry, evicting the oldest beyond TransactionLogCap.
// Negative amounts are ignored so accumulators never decrease.
func (l *RevenueLedger) Record(entry LogEntry) {
	amount := math.Max(entry.Amount, 0)

	switch entry.Kind {
	case LogEntrySubscription:
		l.RecurringRevenue += amount
	case LogEntryBountyFee:
		l.TransactionFees += amount
	case LogEntryAssetRoyalty:
		l.MarketplaceVolume += amount
	}
	l.Velocity += int(math.Floor(amount / 10))

	next := make([]LogEntry, 0, TransactionLogCap)
	next = append(next, entry)
	for _, existing := range l.TransactionLog {
		if len(next) == TransactionLogCap {
			break
		}
		next = append(next, existing)
	}
	l.TransactionLog = next
}

func (l RevenueLedger) Clone() RevenueLedger {
	out := l
	out.TransactionLog = make([]LogEntry, len(l.TransactionLog))
	copy(out.TransactionLog, l.TransactionLog)
	return out
}
