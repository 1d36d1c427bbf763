package redis

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/gigpulse/internal/domain"
)

const (
	DefaultSnapshotChannel = "gigpulse:snapshots"
	DefaultCommandChannel  = "gigpulse:commands"

	eventSnapshot = "snapshot"
	commandBuy    = "buy_asset"
)

type Channels struct {
	Snapshots string
	Commands  string
}

func (c Channels) withDefaults() Channels {
	if c.Snapshots == "" {
		c.Snapshots = DefaultSnapshotChannel
	}
	if c.Commands == "" {
		c.Commands = DefaultCommandChannel
	}
	return c
}

type snapshotEvent struct {
	Type     string                `json:"type"`
	Snapshot domain.EngineSnapshot `json:"snapshot"`
	SentAt   time.Time             `json:"sentAt"`
}

type command struct {
	Type      string    `json:"type"`
	RequestID string    `json:"requestId"`
	AssetID   string    `json:"assetId"`
	SentAt    time.Time `json:"sentAt"`
}

func decodeSnapshot(payload []byte) (domain.EngineSnapshot, error) {
	var event snapshotEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return domain.EngineSnapshot{}, fmt.Errorf("decode snapshot event: %w", err)
	}
	if event.Type != eventSnapshot {
		return domain.EngineSnapshot{}, fmt.Errorf("unexpected event type %q", event.Type)
	}
	if event.Snapshot.Countdown < 0 {
		event.Snapshot.Countdown = 0
	}
	if len(event.Snapshot.Ledger.TransactionLog) > domain.TransactionLogCap {
		event.Snapshot.Ledger.TransactionLog = event.Snapshot.Ledger.TransactionLog[:domain.TransactionLogCap]
	}

	return event.Snapshot, nil
}

func decodeCommand(payload []byte) (command, error) {
	var cmd command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return command{}, fmt.Errorf("decode command: %w", err)
	}
	if cmd.Type != commandBuy {
		return command{}, fmt.Errorf("unexpected command type %q", cmd.Type)
	}
	cmd.AssetID = strings.TrimSpace(cmd.AssetID)
	if cmd.AssetID == "" {
		return command{}, domain.ErrEmptyAssetID
	}

	return cmd, nil
}
