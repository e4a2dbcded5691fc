package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/gsanz-sz/Freebets/pkg/contracts/events"
)

// KafkaPublisher publica eventos de ciclo de vida (aposta criada/concluída,
// transação criada) para consumidores externos. Os envios são fire-and-forget
// na borda HTTP: falha de publicação nunca falha a mutação.
type KafkaPublisher struct {
	BetPlaced   *kafka.Writer
	BetFinished *kafka.Writer
	Transaction *kafka.Writer
}

func NewKafkaPublisher(betPlaced, betFinished, transaction *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{
		BetPlaced:   betPlaced,
		BetFinished: betFinished,
		Transaction: transaction,
	}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.BetPlaced.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}

func (p *KafkaPublisher) PublishBetFinished(ctx context.Context, e events.BetFinished) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.BetFinished.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}

func (p *KafkaPublisher) PublishTransactionCreated(ctx context.Context, e events.TransactionCreated) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Transaction.WriteMessages(ctx, kafka.Message{Key: []byte(e.TransactionID), Value: b})
}
