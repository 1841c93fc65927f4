package kafka_client

import "os"

type KafkaConfig struct {
	Broker          string
	GroupID         string
	Topic           string
	OutputTopic     string
	TransactionalID string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func GetKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Broker:          getEnv("KAFKA_BROKER", "localhost:29092"),
		GroupID:         getEnv("KAFKA_CONSUMER_GROUP_ID", "sentiview-render-group"),
		Topic:           getEnv("KAFKA_CONSUMER_TOPIC", KAFKA_TOPIC_CHAT_RESPONSES),
		OutputTopic:     getEnv("KAFKA_OUTPUT_TOPIC", KAFKA_TOPIC_RENDERED_RESPONSES),
		TransactionalID: getEnv("KAFKA_TRANSACTIONAL_ID", "sentiview-producer-1"),
	}
}
