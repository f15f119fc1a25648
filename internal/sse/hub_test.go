package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumbleweed-games/mostwanted/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  string
		want  string
	}{
		{
			name:  "single line",
			event: "startGame",
			data:  `{"action":"startGame"}`,
			want:  "event: startGame\ndata: {\"action\":\"startGame\"}\n\n",
		},
		{
			name:  "multi line",
			event: "update",
			data:  "line1\nline2",
			want:  "event: update\ndata: line1\ndata: line2\n\n",
		},
		{
			name:  "crlf normalized",
			event: "update",
			data:  "line1\r\nline2",
			want:  "event: update\ndata: line1\ndata: line2\n\n",
		},
		{
			name:  "empty data",
			event: "ping",
			data:  "",
			want:  "event: ping\ndata: \n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(formatSSEMessage(tt.event, tt.data)))
		})
	}
}

// receive reads one message off a client's send channel or fails the test
func receive(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-client.send:
		require.True(t, ok, "send channel closed unexpectedly")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub("Dodge", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	first := NewClient(hub)
	second := NewClient(hub)
	hub.Register(first)
	hub.Register(second)
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 2
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastEvent("startGame", `{"townCode":"Dodge"}`)

	for _, client := range []*Client{first, second} {
		msg := string(receive(t, client))
		assert.Contains(t, msg, "event: startGame")
		assert.Contains(t, msg, `"townCode":"Dodge"`)
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub("Dodge", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	hub.Register(client)
	hub.Unregister(client)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after unregister")
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub("Dodge", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub)
	hub.Register(client)
	hub.Close()

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after hub shutdown")
	}
}

func TestHubManagerScopesBroadcastsToTown(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	dodge := manager.GetOrCreateHub("Dodge")
	tombstone := manager.GetOrCreateHub("Tombstone")
	defer manager.RemoveHub("Dodge")
	defer manager.RemoveHub("Tombstone")

	dodgeClient := NewClient(dodge)
	tombstoneClient := NewClient(tombstone)
	dodge.Register(dodgeClient)
	tombstone.Register(tombstoneClient)

	dodge.BroadcastEvent("startGame", `{"townCode":"Dodge"}`)

	msg := string(receive(t, dodgeClient))
	assert.Contains(t, msg, `"townCode":"Dodge"`)

	// The other town's client hears nothing
	select {
	case leaked := <-tombstoneClient.send:
		t.Fatalf("broadcast leaked across towns: %q", leaked)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubManagerReusesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.RemoveHub("Dodge")

	first := manager.GetOrCreateHub("Dodge")
	second := manager.GetOrCreateHub("Dodge")
	assert.Same(t, first, second)

	assert.Nil(t, manager.GetHub("Tombstone"))
}

func TestBroadcasterGameStarted(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// No hub, nobody listening: must not panic
	broadcaster.GameStarted("Nowhere")

	hub := manager.GetOrCreateHub("Dodge")
	defer manager.RemoveHub("Dodge")

	client := NewClient(hub)
	hub.Register(client)

	broadcaster.GameStarted("Dodge")

	msg := string(receive(t, client))
	assert.Contains(t, msg, "event: startGame")
	assert.Contains(t, msg, `"action":"startGame"`)
	assert.Contains(t, msg, `"townCode":"Dodge"`)
}

func TestBroadcasterPlayerJoined(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("Dodge")
	defer manager.RemoveHub("Dodge")

	client := NewClient(hub)
	hub.Register(client)

	broadcaster.PlayerJoined("Dodge", "Bob")

	msg := string(receive(t, client))
	assert.Contains(t, msg, "event: playerJoined")
	assert.Contains(t, msg, `"name":"Bob"`)
}
