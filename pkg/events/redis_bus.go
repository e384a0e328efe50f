package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/hugohenrick/erp-revenda/pkg/logger"
)

// RedisBus propaga as alterações entre processos via pub/sub do Redis
type RedisBus struct {
	client  *redis.Client
	channel string
	local   *LocalBus
	logger  logger.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

// NewRedisBus cria um barramento sobre o canal informado
func NewRedisBus(client *redis.Client, channel string, log logger.Logger) *RedisBus {
	return &RedisBus{
		client:  client,
		channel: channel,
		local:   NewLocalBus(),
		logger:  log,
	}
}

var _ Bus = (*RedisBus)(nil)

// Start assina o canal e passa a distribuir as mensagens recebidas
func (b *RedisBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pubsub != nil {
		return nil
	}

	ps := b.client.Subscribe(ctx, b.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("erro ao assinar canal %s: %w", b.channel, err)
	}

	b.pubsub = ps
	b.done = make(chan struct{})
	go b.loop(ps.Channel(), b.done)
	return nil
}

func (b *RedisBus) loop(messages <-chan *redis.Message, done chan struct{}) {
	defer close(done)
	for msg := range messages {
		var change Change
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			b.logger.Warn("mensagem de alteração inválida", "channel", msg.Channel, "error", err)
			continue
		}
		b.local.dispatch(change)
	}
}

// Publish envia a alteração ao canal
func (b *RedisBus) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("erro ao serializar alteração: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("erro ao publicar alteração: %w", err)
	}
	return nil
}

// Subscribe registra um assinante local
func (b *RedisBus) Subscribe(handler Handler) func() {
	return b.local.Subscribe(handler)
}

// Close encerra a assinatura
func (b *RedisBus) Close() error {
	b.mu.Lock()
	ps, done := b.pubsub, b.done
	b.pubsub = nil
	b.mu.Unlock()

	if ps == nil {
		return nil
	}
	err := ps.Close()
	<-done
	return err
}
