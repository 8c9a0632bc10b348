package wsclient

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"

	sessionhandler "hr-eval-backend/lib/session"
	sessionhub "hr-eval-backend/lib/ws/hub/session-hub"
	wsmodels "hr-eval-backend/models/ws"
)

func NewClient(sessionID, userID, userName string, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:      c,
		sessionID: sessionID,
		userID:    userID,
		userName:  userName,
	}
}

type WsClient struct {
	conn      *websocket.Conn
	sessionID string
	userID    string
	userName  string
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает сообщения клиента до закрытия соединения.
// Успешная смена кандидата подтверждается отправителю и
// транслируется остальным участникам комнаты.
func (c *WsClient) Dispatch() {
	logger := log.
		WithField("session_id", c.sessionID).
		WithField("user_id", c.userID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			break
		}
		msg := wsmodels.ClientMessage{}
		if err = json.Unmarshal(data, &msg); err != nil {
			sessionhub.Instance.SendTo(c.sessionID, c.userID, wsmodels.NewError("некорректное сообщение"))
			continue
		}
		if err = msg.Validate(); err != nil {
			sessionhub.Instance.SendTo(c.sessionID, c.userID, wsmodels.NewError(err.Error()))
			continue
		}
		c.handleSetCandidate(msg.CandidateID)
	}
}

func (c *WsClient) handleSetCandidate(candidateID string) {
	candidateName, err := sessionhandler.Instance.SetCurrentCandidate(context.Background(), c.sessionID, candidateID, c.userID)
	if err != nil {
		sessionhub.Instance.SendTo(c.sessionID, c.userID, wsmodels.NewError(err.Error()))
		return
	}
	// сперва подтверждение отправителю, затем рассылка остальным
	sessionhub.Instance.SendTo(c.sessionID, c.userID,
		wsmodels.NewCandidateConfirmed(candidateID, candidateName, c.userName))
	sessionhub.Instance.Broadcast(c.sessionID, c.userID,
		wsmodels.NewCandidateUpdated(candidateID, candidateName, c.userName))
}
