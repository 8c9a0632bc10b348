package sessionhub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	wsmodels "hr-eval-backend/models/ws"
)

type fakeConn struct {
	messages chan wsmodels.ServerMessage
	closed   chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		messages: make(chan wsmodels.ServerMessage, 16),
		closed:   make(chan struct{}, 1),
	}
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.messages <- v.(wsmodels.ServerMessage)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed <- struct{}{}
	return nil
}

func (f *fakeConn) receive(t *testing.T) wsmodels.ServerMessage {
	t.Helper()
	select {
	case msg := <-f.messages:
		return msg
	case <-time.After(time.Second):
		t.Fatal("сообщение не получено")
		return wsmodels.ServerMessage{}
	}
}

func (f *fakeConn) expectSilence(t *testing.T) {
	t.Helper()
	select {
	case msg := <-f.messages:
		t.Fatalf("неожиданное сообщение: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	sender := newFakeConn()
	listener := newFakeConn()
	otherRoom := newFakeConn()

	hub.AddClient("session-1", "user-1", sender)
	hub.AddClient("session-1", "user-2", listener)
	hub.AddClient("session-2", "user-3", otherRoom)

	require.Equal(t, 2, hub.ClientCount("session-1"))
	require.Equal(t, 1, hub.ClientCount("session-2"))

	hub.Broadcast("session-1", "user-1", wsmodels.NewCandidateUpdated("cand-1", "Иванов Иван", "Петров Пётр"))

	msg := listener.receive(t)
	require.Equal(t, wsmodels.TypeCandidateUpdated, msg.Type)
	require.Equal(t, "cand-1", msg.CandidateID)
	require.Equal(t, "Иванов Иван", msg.CandidateName)
	require.Equal(t, "Петров Пётр", msg.UpdatedBy)

	// отправитель и чужая комната сообщение не получают
	sender.expectSilence(t)
	otherRoom.expectSilence(t)
}

func TestHubSendTo(t *testing.T) {
	hub := NewHub()
	target := newFakeConn()
	other := newFakeConn()

	hub.AddClient("session-1", "user-1", target)
	hub.AddClient("session-1", "user-2", other)

	hub.SendTo("session-1", "user-1", wsmodels.NewCandidateConfirmed("cand-1", "Иванов Иван", "Петров Пётр"))

	msg := target.receive(t)
	require.Equal(t, wsmodels.TypeCandidateUpdated, msg.Type)
	require.True(t, msg.Confirmed)
	require.Equal(t, "cand-1", msg.CandidateID)
	require.Equal(t, "Иванов Иван", msg.CandidateName)
	require.Equal(t, "Петров Пётр", msg.UpdatedBy)
	other.expectSilence(t)

	// отправка несуществующему адресату не паникует
	hub.SendTo("session-1", "missing", wsmodels.NewError("нет такого"))
	hub.SendTo("missing", "user-1", wsmodels.NewError("нет такой комнаты"))
}

func TestHubOrdering(t *testing.T) {
	hub := NewHub()
	sender := newFakeConn()
	hub.AddClient("session-1", "user-1", sender)

	// подтверждение ставится в очередь раньше рассылки,
	// клиент получает сообщения в том же порядке
	hub.SendTo("session-1", "user-1", wsmodels.NewCandidateConfirmed("cand-1", "Иванов Иван", "Петров Пётр"))
	hub.Broadcast("session-1", "", wsmodels.NewCandidateUpdated("cand-1", "Иванов Иван", "Петров Пётр"))

	first := sender.receive(t)
	require.True(t, first.Confirmed)
	second := sender.receive(t)
	require.Equal(t, wsmodels.TypeCandidateUpdated, second.Type)
	require.False(t, second.Confirmed)
}

func TestHubDeleteClient(t *testing.T) {
	hub := NewHub()
	conn := newFakeConn()
	hub.AddClient("session-1", "user-1", conn)
	require.Equal(t, 1, hub.ClientCount("session-1"))

	hub.DeleteClient("session-1", "user-1")
	require.Equal(t, 0, hub.ClientCount("session-1"))

	hub.Broadcast("session-1", "", wsmodels.NewError("комната пуста"))
	conn.expectSilence(t)
}
