package kafka_test

import (
	"context"
	"shareit/config"
	"shareit/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "b-1",
		Value: map[string]string{"status": "APPROVED"},
	}

	out, err := msg.ToKafkaMessage("booking.events")
	require.NoError(t, err)

	assert.Equal(t, "booking.events", out.Topic)
	assert.Equal(t, []byte("b-1"), out.Key)
	assert.JSONEq(t, `{"status":"APPROVED"}`, string(out.Value))
}

func TestMessage_ToKafkaMessageUnencodable(t *testing.T) {
	msg := kafka.Message{Key: "b-1", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("booking.events")
	assert.Error(t, err)
}

func TestNew_DisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "booking.events", kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())
}
