package mqtt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"presencewatch/internal/adapters/repository/memory"
	coreerrors "presencewatch/internal/core/errors"
	"presencewatch/internal/core/services"
)

// fakeMessage implements paho.Message.
type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return qos }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func newTestSubscriber(t *testing.T) (*Subscriber, *memory.EventStore) {
	t.Helper()

	store := memory.NewEventStore()
	svc := services.NewPresenceService(store, zap.NewNop())
	sub := NewSubscriber(Config{
		Broker:   "tcp://127.0.0.1:1883",
		Topic:    "presence/+/transitions",
		ClientID: "presencewatch-test",
	}, svc, zap.NewNop())
	return sub, store
}

func TestHandleMessage_DeviceIDInPayload(t *testing.T) {
	sub, store := newTestSubscriber(t)

	err := sub.handleMessage("presence/ignored/transitions",
		[]byte(`{"device_id":"60-6B-44-84-DC-64","timestamp":"2025-06-04T09:00:00Z","state":"online"}`))
	require.NoError(t, err)

	events := store.EventsFor("60:6b:44:84:dc:64", time.Time{}, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), events[0].Timestamp)
}

func TestHandleMessage_DeviceIDFromTopic(t *testing.T) {
	sub, store := newTestSubscriber(t)

	err := sub.handleMessage("presence/60:6b:44:84:dc:64/transitions",
		[]byte(`{"timestamp":"2025-06-04T09:00:00Z","state":"offline"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())
}

func TestHandleMessage_Rejections(t *testing.T) {
	sub, store := newTestSubscriber(t)

	cases := map[string]struct {
		topic   string
		payload string
		target  error
	}{
		"malformed json": {"presence/60:6b:44:84:dc:64/transitions", `{`, nil},
		"no device":      {"presence", `{"timestamp":"2025-06-04T09:00:00Z","state":"online"}`, coreerrors.ErrInvalidDeviceID},
		"bad mac":        {"presence/lobby/transitions", `{"timestamp":"2025-06-04T09:00:00Z","state":"online"}`, coreerrors.ErrInvalidDeviceID},
		"bad state":      {"presence/60:6b:44:84:dc:64/transitions", `{"timestamp":"2025-06-04T09:00:00Z","state":"idle"}`, coreerrors.ErrInvalidState},
		"no timestamp":   {"presence/60:6b:44:84:dc:64/transitions", `{"state":"online"}`, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := sub.handleMessage(tc.topic, []byte(tc.payload))
			require.Error(t, err)
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
			}
		})
	}
	assert.Equal(t, 0, store.Count())
}

func TestHandleMessage_OutOfOrder(t *testing.T) {
	sub, _ := newTestSubscriber(t)
	topic := "presence/60:6b:44:84:dc:64/transitions"

	require.NoError(t, sub.handleMessage(topic, []byte(`{"timestamp":"2025-06-04T10:00:00Z","state":"online"}`)))
	err := sub.handleMessage(topic, []byte(`{"timestamp":"2025-06-04T09:00:00Z","state":"offline"}`))
	assert.ErrorIs(t, err, coreerrors.ErrOutOfOrder)
}

func TestOnMessage_RecordsTransition(t *testing.T) {
	sub, store := newTestSubscriber(t)

	sub.onMessage(nil, fakeMessage{
		topic:   "presence/60:6b:44:84:dc:64/transitions",
		payload: []byte(`{"timestamp":"2025-06-04T09:00:00Z","state":"online"}`),
	})
	sub.onMessage(nil, fakeMessage{topic: "presence/x/transitions", payload: []byte(`nope`)})

	assert.Equal(t, 1, store.Count())
}

func TestDeviceFromTopic(t *testing.T) {
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", deviceFromTopic("presence/aa:bb:cc:dd:ee:ff/transitions"))
	assert.Equal(t, "", deviceFromTopic("presence"))
}
