package journal

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// KafkaJournal fans entries out to a Kafka topic as JSON records so external
// consumers (indexers, analytics) can follow the ledger without touching it.
// Delivery is asynchronous: produce failures are logged, never propagated.
// The durable record is the ledger itself, not this feed.
type KafkaJournal struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
}

// KafkaConfig holds the settings for the Kafka fan-out sink.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// NewKafkaJournal connects a producer for the configured topic.
func NewKafkaJournal(cfg KafkaConfig, logger *zap.Logger) (*KafkaJournal, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaJournal{
		client: client,
		topic:  cfg.Topic,
		logger: logger,
	}, nil
}

// Append produces one record per entry, keyed by sequence number so a
// partition preserves ledger order.
func (j *KafkaJournal) Append(ctx context.Context, entries ...Entry) error {
	for _, e := range entries {
		payload, err := json.Marshal(e)
		if err != nil {
			j.logger.Error("marshal journal entry", zap.Uint64("seq", e.Seq), zap.Error(err))
			continue
		}
		record := &kgo.Record{
			Topic: j.topic,
			Key:   []byte(strconv.FormatUint(e.Seq, 10)),
			Value: payload,
		}
		j.client.Produce(ctx, record, func(r *kgo.Record, err error) {
			if err != nil {
				j.logger.Error("produce journal entry",
					zap.String("topic", r.Topic),
					zap.String("key", string(r.Key)),
					zap.Error(err))
			}
		})
	}
	return nil
}

// Close flushes outstanding records and releases the producer.
func (j *KafkaJournal) Close(ctx context.Context) error {
	err := j.client.Flush(ctx)
	j.client.Close()
	return err
}
