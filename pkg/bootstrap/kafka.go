package bootstrap

import (
	"github.com/jc-juarez/lazarus-statusgen/pkg/config"
	"github.com/jc-juarez/lazarus-statusgen/pkg/kafka"
)

// InitKafka initializes the Kafka manager registry events are published through.
func InitKafka(cfg config.KafkaConfig) (*kafka.Manager, error) {
	return kafka.NewManager(cfg)
}
