package wsmodels

import "github.com/pkg/errors"

const (
	ActionSetCandidate = "set_candidate"

	TypeCandidateUpdated = "candidate_updated"
	TypeError            = "error"
)

// ClientMessage - входящее сообщение клиента комнаты сессии.
type ClientMessage struct {
	Action      string `json:"action"`       // код действия
	CandidateID string `json:"candidate_id"` // ид кандидата для set_candidate
}

func (r ClientMessage) Validate() error {
	if r.Action != ActionSetCandidate {
		return errors.Errorf("неизвестное действие: %s", r.Action)
	}
	if r.CandidateID == "" {
		return errors.New("не указан кандидат")
	}
	return nil
}

// ServerMessage - исходящее сообщение комнаты сессии.
type ServerMessage struct {
	Type          string `json:"type"`                     // код события
	CandidateID   string `json:"candidate_id,omitempty"`   // ид текущего кандидата
	CandidateName string `json:"candidate_name,omitempty"` // имя текущего кандидата
	UpdatedBy     string `json:"updated_by,omitempty"`     // имя инициатора смены
	Confirmed     bool   `json:"confirmed,omitempty"`      // подтверждение отправителю
	Message       string `json:"message,omitempty"`        // текст ошибки
}

func NewCandidateUpdated(candidateID, candidateName, updatedBy string) ServerMessage {
	return ServerMessage{
		Type:          TypeCandidateUpdated,
		CandidateID:   candidateID,
		CandidateName: candidateName,
		UpdatedBy:     updatedBy,
	}
}

// NewCandidateConfirmed - то же событие смены кандидата, но с
// признаком подтверждения. Уходит только инициатору.
func NewCandidateConfirmed(candidateID, candidateName, updatedBy string) ServerMessage {
	return ServerMessage{
		Type:          TypeCandidateUpdated,
		CandidateID:   candidateID,
		CandidateName: candidateName,
		UpdatedBy:     updatedBy,
		Confirmed:     true,
	}
}

func NewError(message string) ServerMessage {
	return ServerMessage{
		Type:    TypeError,
		Message: message,
	}
}
