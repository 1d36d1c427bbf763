package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/metrics"
	"github.com/bnema/gigpulse/internal/ports"
	"github.com/bnema/gigpulse/internal/pubsub"
)

const (
	BootMessage     = "Guardian core online. Monitoring revenue streams and squad activity."
	GreetingMessage = "Hi, I'm Guardian. Ask me about open bounties, your wallet or your reputation."
	ReplyFailure    = "Neural Link stability compromised. Please retry in a moment."

	DefaultThinkingMin       = 800 * time.Millisecond
	DefaultThinkingMax       = 1800 * time.Millisecond
	DefaultGreetingDelay     = 600 * time.Millisecond
	DefaultInsightChance     = 0.05
	DefaultVelocityThreshold = 50
)

type BrokerConfig struct {
	ThinkingMin       time.Duration
	ThinkingMax       time.Duration
	GreetingDelay     time.Duration
	InsightChance     float64
	VelocityThreshold int
}

func DefaultBrokerConfig() BrokerConfig {
	return BrokerConfig{
		ThinkingMin:       DefaultThinkingMin,
		ThinkingMax:       DefaultThinkingMax,
		GreetingDelay:     DefaultGreetingDelay,
		InsightChance:     DefaultInsightChance,
		VelocityThreshold: DefaultVelocityThreshold,
	}
}

// Broker owns the session message log. Every mutation goes through append,
// which publishes the whole log to subscribers. publishMu keeps deliveries
// in append order; callbacks must not append.
type Broker struct {
	publishMu sync.Mutex
	mu        sync.Mutex
	messages  []domain.Message
	lastAt    time.Time
	userID    domain.UserID

	topic     *pubsub.Topic[[]domain.Message]
	responder ports.Responder
	contexts  ChatContextSource
	rng       ports.Random
	clock     ports.Clock
	config    BrokerConfig
	logger    zerolog.Logger

	inflight            sync.WaitGroup
	done                chan struct{}
	closeOnce           sync.Once
	unsubscribeIdentity func()
}

func NewBroker(responder ports.Responder, contexts ChatContextSource, identity ports.IdentityProvider, rng ports.Random, clock ports.Clock, logger zerolog.Logger, config BrokerConfig) *Broker {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if rng == nil {
		rng = ports.NewSeededRandom(uint64(time.Now().UnixNano()))
	}
	if config.InsightChance <= 0 {
		config.InsightChance = DefaultInsightChance
	}
	if config.VelocityThreshold <= 0 {
		config.VelocityThreshold = DefaultVelocityThreshold
	}

	b := &Broker{
		topic:               pubsub.NewTopic[[]domain.Message](),
		responder:           responder,
		contexts:            contexts,
		rng:                 rng,
		clock:               clock,
		config:              config,
		logger:              logger.With().Str("component", "broker").Logger(),
		done:                make(chan struct{}),
		unsubscribeIdentity: func() {},
	}

	if identity != nil {
		b.userID = identity.CurrentUserID()
		b.unsubscribeIdentity = identity.Subscribe(b.setUser)
	}

	b.append(domain.SenderSystem, domain.CategoryAlert, BootMessage)
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		b.sleep(config.GreetingDelay)
		b.append(domain.SenderBroker, domain.CategoryNormal, GreetingMessage)
	}()

	return b
}

func (b *Broker) setUser(userID domain.UserID) {
	b.mu.Lock()
	previous := b.userID
	b.userID = userID
	b.mu.Unlock()

	if userID == "" && previous != "" {
		b.logger.Info().Str("user_id", string(previous)).Msg("user signed out, chat context reset")
		return
	}
	b.logger.Debug().Str("user_id", string(userID)).Msg("chat user changed")
}

func (b *Broker) CurrentUser() domain.UserID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.userID
}

// Messages returns a copy of the log in append order.
func (b *Broker) Messages() []domain.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.CloneMessages(b.messages)
}

// Subscribe registers fn to receive the full log after every append.
func (b *Broker) Subscribe(fn func([]domain.Message)) func() {
	return b.topic.Subscribe(fn)
}

// SendMessage appends the user's text and schedules exactly one terminal
// broker reply. The reply outlives ctx cancellation.
func (b *Broker) SendMessage(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyMessage
	}

	b.mu.Lock()
	history := domain.CloneMessages(b.messages)
	b.mu.Unlock()

	b.append(domain.SenderUser, domain.CategoryNormal, text)

	replyCtx := context.WithoutCancel(ctx)
	b.inflight.Add(1)
	go b.reply(replyCtx, text, history)
	return nil
}

func (b *Broker) reply(ctx context.Context, input string, history []domain.Message) {
	defer b.inflight.Done()
	started := time.Now()

	text, err := b.produceReply(ctx, input, history)
	metrics.ReplyDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		b.logger.Warn().Err(err).Msg("reply failed")
		b.append(domain.SenderBroker, domain.CategoryAlert, ReplyFailure)
		return
	}

	b.append(domain.SenderBroker, domain.CategoryNormal, text)
}

func (b *Broker) produceReply(ctx context.Context, input string, history []domain.Message) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reply panicked: %v", r)
		}
	}()

	b.sleep(jitter(b.rng, b.config.ThinkingMin, b.config.ThinkingMax))

	chat := domain.ChatContext{UserID: b.CurrentUser(), Username: GuestUsername}
	if b.contexts != nil {
		chat = b.contexts.Build(ctx, chat.UserID)
	}
	chat.History = history

	if b.responder == nil {
		return "", domain.ErrResponderUnavailable
	}
	reply, err = b.responder.Respond(ctx, input, chat)
	if err != nil {
		return "", fmt.Errorf("respond: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", domain.ErrEmptyGeneratedReply
	}

	return reply, nil
}

// AnalyzeState rolls the insight gate once and, when it fires, appends at
// most one message: an idle-squad alert first, a velocity insight otherwise.
func (b *Broker) AnalyzeState(ledger domain.RevenueLedger, squad []domain.SquadMember) bool {
	if b.rng.Float64() >= b.config.InsightChance {
		return false
	}

	idle := domain.IdleCount(squad)
	switch {
	case idle > 1:
		b.append(domain.SenderBroker, domain.CategoryAlert,
			fmt.Sprintf("%d squad members are idle. Post a quick bounty to get them back on the board.", idle))
	case ledger.Velocity > b.config.VelocityThreshold:
		b.append(domain.SenderBroker, domain.CategoryInsight,
			fmt.Sprintf("Velocity is up to %d with %s in recurring revenue. Good moment to launch a premium asset drop.",
				ledger.Velocity, domain.CompactCurrency(ledger.RecurringRevenue)))
	default:
		return false
	}

	return true
}

func (b *Broker) append(sender domain.Sender, category domain.Category, text string) {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	snapshot := b.record(sender, category, text)

	metrics.BrokerMessages.WithLabelValues(string(sender), string(category)).Inc()
	b.logger.Debug().Str("sender", string(sender)).Str("category", string(category)).Int("log_len", len(snapshot)).Msg("message appended")
	b.topic.Publish(snapshot)
}

func (b *Broker) record(sender domain.Sender, category domain.Category, text string) []domain.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	if now.Before(b.lastAt) {
		now = b.lastAt
	}
	b.lastAt = now
	b.messages = append(b.messages, domain.Message{
		ID:        ulid.Make().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: now,
		Category:  category,
	})
	return domain.CloneMessages(b.messages)
}

func (b *Broker) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-b.done:
	}
}

// Wait blocks until the greeting and every pending reply are appended.
func (b *Broker) Wait() {
	b.inflight.Wait()
}

// Close stops listening for identity changes, skips remaining delays and
// waits for pending replies.
func (b *Broker) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
		b.unsubscribeIdentity()
	})
	b.inflight.Wait()
}
