package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/gigpulse/internal/domain"
)

const (
	defaultMessageLimit = 5
	velocityBarWidth    = 24
	velocityBarScale    = 100
)

type Board struct {
	Snapshot domain.EngineSnapshot
	Messages []domain.Message
}

type RenderOptions struct {
	Now          time.Time
	MessageLimit int
}

func renderView(board Board, opts RenderOptions, s styles) string {
	snap := board.Snapshot
	lines := []string{
		s.title.Render("Gigpulse Engine"),
		s.header.Render(fmt.Sprintf("next drop in %s  |  owned assets: %d", FormatCountdown(snap.Countdown), len(snap.OwnedAssets))),
		s.section.Render(renderSquad(snap.Squad, opts, s)),
		s.section.Render(renderLedger(snap.Ledger, s)),
		s.section.Render(renderTransactions(snap.Ledger.TransactionLog, opts, s)),
	}

	if len(board.Messages) > 0 {
		lines = append(lines, s.section.Render(renderMessages(board.Messages, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSquad(squad []domain.SquadMember, opts RenderOptions, s styles) string {
	parts := []string{s.sectionKey.Render(fmt.Sprintf("Squad (%d idle)", domain.IdleCount(squad)))}
	if len(squad) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, s.empty.Render("No squad members."))...)
	}

	for _, member := range squad {
		status := s.statuses[string(member.Status)].Render(fmt.Sprintf("%-10s", member.Status))
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			s.name.Render(fmt.Sprintf("%-6s", member.Name)), " ", status,
		)
		if member.CurrentTask != "" {
			line += " " + s.detail.Render(member.CurrentTask)
		}
		if !opts.Now.IsZero() {
			line += " " + s.meta.Render("("+domain.RelativeLabel(member.LastActiveAt, opts.Now)+")")
		}
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderLedger(ledger domain.RevenueLedger, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.sectionKey.Render("Revenue"),
		ledgerLine("recurring", ledger.RecurringRevenue, s),
		ledgerLine("fees", ledger.TransactionFees, s),
		ledgerLine("volume", ledger.MarketplaceVolume, s),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.meta.Render(fmt.Sprintf("%-10s", "velocity")), " ",
			renderProgressBar(float64(ledger.Velocity), velocityBarScale, velocityBarWidth, s), " ",
			s.detail.Render(fmt.Sprintf("%d", ledger.Velocity)),
		),
	)
}

func ledgerLine(label string, amount float64, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.meta.Render(fmt.Sprintf("%-10s", label)), " ",
		s.amount.Render(domain.CompactCurrency(amount)),
	)
}

func renderTransactions(log []domain.LogEntry, opts RenderOptions, s styles) string {
	parts := []string{s.sectionKey.Render("Transactions")}
	if len(log) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, s.empty.Render("No transactions yet."))...)
	}

	for _, entry := range log {
		label := entry.OccurredAtLabel
		if !opts.Now.IsZero() {
			label = domain.RelativeLabel(entry.OccurredAt, opts.Now)
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			s.amount.Render(fmt.Sprintf("%-10s", entry.DisplayAmount)), " ",
			s.detail.Render(fmt.Sprintf("%-13s", entry.Kind)), " ",
			s.name.Render(entry.DisplayCounterparty()), " ",
			s.meta.Render(label),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderMessages(messages []domain.Message, opts RenderOptions, s styles) string {
	limit := opts.MessageLimit
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	parts := []string{s.sectionKey.Render("Guardian")}
	for _, message := range messages {
		parts = append(parts, formatMessage(message, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// FormatMessage renders one log line, e.g. "BROKER ! 3 squad members are idle".
func FormatMessage(message domain.Message) string {
	return formatMessage(message, newStyles())
}

func formatMessage(message domain.Message, s styles) string {
	sender := s.senders[string(message.Sender)].Render(fmt.Sprintf("%-6s", message.Sender))
	switch message.Category {
	case domain.CategoryAlert:
		return sender + " " + s.alert.Render("! "+message.Text)
	case domain.CategoryInsight:
		return sender + " " + s.insight.Render("* "+message.Text)
	default:
		return sender + " " + s.detail.Render(message.Text)
	}
}

// FormatCountdown renders seconds as "mm:ss", or "h:mm:ss" from one hour up.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, sec := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

func renderProgressBar(value, scale float64, width int, s styles) string {
	if width <= 0 || scale <= 0 {
		return ""
	}

	fraction := math.Min(math.Max(value/scale, 0), 1)
	filled := int(math.Round(float64(width) * fraction))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
