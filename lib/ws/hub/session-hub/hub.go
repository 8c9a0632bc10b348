package sessionhub

import (
	"sync"

	wsmodels "hr-eval-backend/models/ws"
)

// Provider - комнаты сессий. Каждая активная сессия держит свою
// комнату, сообщения о смене кандидата расходятся по её участникам.
type Provider interface {
	AddClient(sessionID, userID string, conn Conn)
	DeleteClient(sessionID, userID string)
	SendTo(sessionID, userID string, msg wsmodels.ServerMessage)
	// Broadcast отправляет сообщение всем участникам комнаты, кроме
	// exceptUserID (пустая строка означает всем).
	Broadcast(sessionID, exceptUserID string, msg wsmodels.ServerMessage)
	ClientCount(sessionID string) int
}

var Instance Provider

func Init() {
	Instance = NewHub()
}

func NewHub() Provider {
	return &impl{
		rooms: map[string]map[string]clientSession{},
	}
}

type impl struct {
	mu    sync.RWMutex
	rooms map[string]map[string]clientSession //map[sessionID]map[userID]
}

func (i *impl) AddClient(sessionID, userID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	room, ok := i.rooms[sessionID]
	if !ok {
		room = map[string]clientSession{}
		i.rooms[sessionID] = room
	}
	if oldSess, ok := room[userID]; ok {
		oldSess.stop()
	}
	room[userID] = newSession(conn)
}

func (i *impl) DeleteClient(sessionID, userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	room, ok := i.rooms[sessionID]
	if !ok {
		return
	}
	sess, ok := room[userID]
	if !ok {
		return
	}
	delete(room, userID)
	if len(room) == 0 {
		delete(i.rooms, sessionID)
	}
	sess.stop()
	close(sess.sendCh)
}

func (i *impl) SendTo(sessionID, userID string, msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	room, ok := i.rooms[sessionID]
	if !ok {
		return
	}
	if sess, ok := room[userID]; ok {
		sess.sendCh <- msg
	}
}

func (i *impl) Broadcast(sessionID, exceptUserID string, msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	room, ok := i.rooms[sessionID]
	if !ok {
		return
	}
	for userID, sess := range room {
		if userID == exceptUserID {
			continue
		}
		sess.sendCh <- msg
	}
}

func (i *impl) ClientCount(sessionID string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.rooms[sessionID])
}
