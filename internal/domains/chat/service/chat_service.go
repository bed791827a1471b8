package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"species-catalog/internal/domains/chat/model"
	"species-catalog/internal/infrastructure/metrics"
)

// SystemInstruction keeps the assistant on topic
const SystemInstruction = "You are a helpful assistant for a species catalogue. " +
	"Only answer questions about animals: their biology, behaviour, habitats, " +
	"conservation status and taxonomy. Politely decline anything unrelated to animals."

// Completer is a single-turn text completion backend
type Completer interface {
	Complete(ctx context.Context, system, message string) (string, error)
}

type ServiceInterface interface {
	Reply(ctx context.Context, message string) (string, error)
}

type chatService struct {
	completer Completer
	metrics   *metrics.Metrics
}

// NewChatService creates the chat proxy. A nil completer disables chat.
func NewChatService(completer Completer, m *metrics.Metrics) ServiceInterface {
	return &chatService{completer: completer, metrics: m}
}

// Reply forwards message once. Upstream failures are wrapped in
// model.ErrUpstream and not retried.
func (s *chatService) Reply(ctx context.Context, message string) (string, error) {
	if s.completer == nil {
		return "", model.ErrChatDisabled
	}

	start := time.Now()
	text, err := s.completer.Complete(ctx, SystemInstruction, message)
	s.metrics.RecordChat(err, time.Since(start))
	if err != nil {
		log.Warn().Err(err).Dur("latency", time.Since(start)).Msg("chat completion failed")
		return "", fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}

	return text, nil
}
