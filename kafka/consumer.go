package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"contentpilot/logging"

	"github.com/IBM/sarama"
)

// MessageHandler processes one payload and reports whether its offset may be
// committed. Uncommitted messages come back after a rebalance or restart.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (commit bool, err error)
}

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
}

// Consumer feeds one topic of a consumer group to a MessageHandler.
type Consumer struct {
	group   sarama.ConsumerGroup
	session *session
	topic   string
	groupID string
}

func newSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Return.Errors = true
	return cfg
}

func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	if cfg.Handler == nil {
		return nil, errors.New("kafka consumer needs a handler")
	}
	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, newSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to join consumer group %s: %w", cfg.GroupID, err)
	}
	return &Consumer{
		group:   group,
		session: newSession(cfg.Handler),
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
	}, nil
}

// Start consumes in the background until ctx is done. It returns once the
// first group session has been set up.
func (c *Consumer) Start(ctx context.Context) error {
	go c.consumeLoop(ctx)
	go c.drainErrors()

	select {
	case <-c.session.joined:
	case <-ctx.Done():
		return ctx.Err()
	}
	logging.Infof("kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)
	return nil
}

// Consume returns at every rebalance, so it is called in a loop.
func (c *Consumer) consumeLoop(ctx context.Context) {
	for ctx.Err() == nil {
		err := c.group.Consume(ctx, []string{c.topic}, c.session)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled), errors.Is(err, sarama.ErrClosedConsumerGroup):
			logging.Infof("kafka consumer stopped")
			return
		default:
			logging.Errorf("kafka consume on %s: %v", c.topic, err)
		}
	}
}

func (c *Consumer) drainErrors() {
	for err := range c.group.Errors() {
		logging.Errorf("kafka consumer error: %v", err)
	}
}

func (c *Consumer) Close() error {
	logging.Infof("closing kafka consumer")
	return c.group.Close()
}

// session implements sarama.ConsumerGroupHandler. It is shared by every
// group session; joined closes once, on the first Setup.
type session struct {
	handler MessageHandler
	joined  chan struct{}
	once    sync.Once
}

func newSession(h MessageHandler) *session {
	return &session{handler: h, joined: make(chan struct{})}
}

func (s *session) Setup(sarama.ConsumerGroupSession) error {
	s.once.Do(func() { close(s.joined) })
	return nil
}

func (s *session) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (s *session) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := sess.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			s.deliver(ctx, sess, msg)
		}
	}
}

func (s *session) deliver(ctx context.Context, sess sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage) {
	log := logging.WithFields(logging.Fields{"partition": msg.Partition, "offset": msg.Offset})
	log.Debugf("received message key=%s", string(msg.Key))

	commit, err := s.handler.HandleMessage(ctx, msg.Value)
	if err != nil {
		log.Errorf("message handling failed: %v", err)
	}
	if commit {
		sess.MarkMessage(msg, "")
	}
}

// TypedMessageHandler decodes JSON payloads into T, then validates and
// processes them.
type TypedMessageHandler[T any] struct {
	Validate func(msg *T) bool
	Process  func(ctx context.Context, msg *T) error
	// AlwaysMark commits undecodable and rejected payloads so they are skipped.
	AlwaysMark bool
}

func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, payload []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(payload, &msg); err != nil {
		logging.Warnf("dropping undecodable message: %v", err)
		return h.AlwaysMark, nil
	}
	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}
	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}
