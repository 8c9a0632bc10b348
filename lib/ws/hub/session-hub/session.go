package sessionhub

import (
	"context"

	log "github.com/sirupsen/logrus"

	wsmodels "hr-eval-backend/models/ws"
)

// Conn - минимальный интерфейс соединения, который нужен комнате.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type clientSession struct {
	conn Conn

	// Исходящие сообщения, буферизованы.
	sendCh chan wsmodels.ServerMessage
	stop   func()
}

func newSession(conn Conn) clientSession {
	ctx, cancelFn := context.WithCancel(context.TODO())
	sess := clientSession{
		stop:   cancelFn,
		conn:   conn,
		sendCh: make(chan wsmodels.ServerMessage, 8),
	}
	go sess.startSend(ctx)
	return sess
}

func (s clientSession) startSend(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg, opened := <-s.sendCh:
			if !opened {
				return
			}
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

func (s clientSession) close() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil {
		log.WithError(err).Debug("ошибка закрытия соединения")
	}
}
