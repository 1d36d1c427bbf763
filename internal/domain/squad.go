package domain

import "time"

type SquadStatus string

const (
	SquadStatusActive     SquadStatus = "active"
	SquadStatusIdle       SquadStatus = "idle"
	SquadStatusPublishing SquadStatus = "publishing"
	SquadStatusOffline    SquadStatus = "offline"
)

type SquadMember struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	AvatarRef    string      `json:"avatarRef"`
	Status       SquadStatus `json:"status"`
	LastActiveAt time.Time   `json:"lastActiveAt"`
	CurrentTask  string      `json:"currentTask,omitempty"`
}

// Working reports whether the status carries a current task.
func (s SquadStatus) Working() bool {
	return s == SquadStatusActive || s == SquadStatusPublishing
}

// SetStatus moves the member to status and keeps CurrentTask consistent:
// task is kept only for working statuses.
func (m *SquadMember) SetStatus(status SquadStatus, task string, at time.Time) {
	m.Status = status
	m.LastActiveAt = at
	if status.Working() {
		m.CurrentTask = task
		return
	}
	m.CurrentTask = ""
}

func IdleCount(squad []SquadMember) int {
	count := 0
	for _, member := range squad {
		if member.Status == SquadStatusIdle {
			count++
		}
	}
	return count
}

func CloneSquad(squad []SquadMember) []SquadMember {
	out := make([]SquadMember, len(squad))
	copy(out, squad)
	return out
}
