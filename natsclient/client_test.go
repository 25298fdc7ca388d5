package natsclient

import (
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/statekit/errors"
)

// Test basic client creation
func TestNewClient(t *testing.T) {
	client, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)

	assert.NotNil(t, client)
	assert.Equal(t, "nats://localhost:4222", client.URL())
	assert.Equal(t, StatusDisconnected, client.Status())
	assert.False(t, client.IsConnected())
	assert.Equal(t, int32(0), client.Failures())
}

func TestNewClient_EmptyURL(t *testing.T) {
	client, err := NewClient("")
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, errors.IsConfiguration(err))
}

func TestNewClient_Options(t *testing.T) {
	client, err := NewClient("nats://localhost:4222",
		WithName("test-client"),
		WithTimeout(time.Second),
		WithMaxReconnects(3),
		WithReconnectWait(time.Millisecond),
		WithCredentials("user", "pass"),
		WithToken("secret"),
	)
	require.NoError(t, err)

	assert.Equal(t, "test-client", client.clientName)
	assert.Equal(t, time.Second, client.timeout)
	assert.Equal(t, 3, client.maxReconnects)
	assert.Equal(t, time.Millisecond, client.reconnectWait)
	assert.Equal(t, "user", client.username)
	assert.Equal(t, "secret", client.token)
}

func TestConnectionStatus_String(t *testing.T) {
	assert.Equal(t, "disconnected", StatusDisconnected.String())
	assert.Equal(t, "connecting", StatusConnecting.String())
	assert.Equal(t, "connected", StatusConnected.String())
	assert.Equal(t, "reconnecting", StatusReconnecting.String())
	assert.Equal(t, "unknown", ConnectionStatus(99).String())
}

// Operations without a connection fail transiently
func TestOperations_NotConnected(t *testing.T) {
	client, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)

	err = client.Publish("test.subject", []byte("data"))
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))

	_, err = client.Subscribe("test.subject", func(_ *nats.Msg) {})
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))
}

func TestClose_Idempotent(t *testing.T) {
	client, err := NewClient("nats://localhost:4222", WithToken("secret"))
	require.NoError(t, err)

	client.Close()
	client.Close() // second close is a no-op

	assert.Equal(t, StatusDisconnected, client.Status())
	assert.Empty(t, client.token)
	assert.Nil(t, client.subs)
}

// Close releases tracked subscriptions immediately rather than leaving them
// live on a closed client. Set NATS_TEST_URL to enable.
func TestClose_ReleasesSubscriptions(t *testing.T) {
	url := os.Getenv("NATS_TEST_URL")
	if url == "" {
		t.Skip("NATS_TEST_URL not set; skipping integration test")
	}

	client, err := NewClient(url, WithTimeout(2*time.Second))
	require.NoError(t, err)
	require.NoError(t, client.Connect())

	sub, err := client.Subscribe("statekit.close", func(_ *nats.Msg) {})
	require.NoError(t, err)
	require.True(t, sub.IsValid())

	client.Close()

	assert.False(t, sub.IsValid())
	assert.Nil(t, client.subs)
}

// Integration test against a live NATS server. Set NATS_TEST_URL to enable,
// e.g. NATS_TEST_URL=nats://localhost:4222 go test ./natsclient/
func TestClient_Integration(t *testing.T) {
	url := os.Getenv("NATS_TEST_URL")
	if url == "" {
		t.Skip("NATS_TEST_URL not set; skipping integration test")
	}

	client, err := NewClient(url, WithTimeout(2*time.Second))
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Connect())
	assert.Equal(t, StatusConnected, client.Status())
	assert.True(t, client.IsConnected())

	received := make(chan []byte, 1)
	_, err = client.Subscribe("statekit.test", func(msg *nats.Msg) {
		received <- msg.Data
	})
	require.NoError(t, err)

	require.NoError(t, client.Publish("statekit.test", []byte("hello")))

	select {
	case data := <-received:
		assert.Equal(t, []byte("hello"), data)
	case <-time.After(2 * time.Second):
		t.Fatal("message not received")
	}

	require.NoError(t, client.Drain())
}
