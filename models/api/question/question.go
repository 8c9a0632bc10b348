package questionapimodels

import (
	"github.com/pkg/errors"

	"hr-eval-backend/models"
	dbmodels "hr-eval-backend/models/db"
)

type OptionData struct {
	Text       string `json:"text"`        // текст варианта
	IsCorrect  bool   `json:"is_correct"`  // признак правильного ответа
	OrderIndex int    `json:"order_index"` // позиция в списке
}

type QuestionData struct {
	Text       string              `json:"text"`        // текст вопроса
	Type       models.QuestionType `json:"type"`        // тип вопроса
	MaxScore   float64             `json:"max_score"`   // максимальный балл
	OrderIndex int                 `json:"order_index"` // позиция в списке
	IsActive   *bool               `json:"is_active"`   // признак активности
	Options    []OptionData        `json:"options"`     // варианты ответа
}

func (r QuestionData) Validate() error {
	if r.Text == "" {
		return errors.New("не указан текст вопроса")
	}
	if !r.Type.IsValid() {
		return errors.New("неизвестный тип вопроса")
	}
	if r.MaxScore <= 0 {
		return errors.New("максимальный балл должен быть положительным")
	}
	if r.Type == models.QuestionTypeMCQ && len(r.Options) < 2 {
		return errors.New("для вопроса с выбором нужно минимум два варианта")
	}
	return nil
}

type OptionView struct {
	OptionData
	ID string `json:"id"`
}

type QuestionView struct {
	QuestionData
	ID       string       `json:"id"`
	TypeName string       `json:"type_name"`
	Options  []OptionView `json:"options"`
}

type AnswerData struct {
	QuestionID       string  `json:"question_id"`        // ид вопроса
	SelectedOptionID *string `json:"selected_option_id"` // выбранный вариант (mcq/true_false)
	AnswerText       string  `json:"answer_text"`        // свободный ответ (qa)
	Score            float64 `json:"score"`              // балл, выставленный вручную для qa
}

type SaveAnswersRequest struct {
	CandidateID string       `json:"candidate_id"` // ид кандидата
	Answers     []AnswerData `json:"answers"`      // ответы по вопросам
	IsCompleted bool         `json:"is_completed"` // признак завершения листа опроса
	Notes       string       `json:"notes"`        // примечания
}

func (r SaveAnswersRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан кандидат")
	}
	for _, a := range r.Answers {
		if a.QuestionID == "" {
			return errors.New("в ответе не указан вопрос")
		}
	}
	return nil
}

type AnswerView struct {
	AnswerData
	ID           string `json:"id"`
	QuestionText string `json:"question_text"`
}

type CandidateEvaluationView struct {
	ID            string       `json:"id"`
	SessionID     string       `json:"session_id"`
	CandidateID   string       `json:"candidate_id"`
	EvaluatorID   string       `json:"evaluator_id"`
	EvaluatorName string       `json:"evaluator_name"`
	IsCompleted   bool         `json:"is_completed"`
	Notes         string       `json:"notes"`
	TotalScore    float64      `json:"total_score"` // сумма баллов по ответам
	MaxScore      float64      `json:"max_score"`   // сумма максимальных баллов
	Answers       []AnswerView `json:"answers"`
}

func QuestionConvert(rec dbmodels.EvaluationQuestion) QuestionView {
	isActive := rec.IsActive
	view := QuestionView{
		QuestionData: QuestionData{
			Text:       rec.Text,
			Type:       rec.Type,
			MaxScore:   rec.MaxScore,
			OrderIndex: rec.OrderIndex,
			IsActive:   &isActive,
		},
		ID:       rec.ID,
		TypeName: rec.Type.ToHuman(),
		Options:  make([]OptionView, 0, len(rec.Options)),
	}
	for _, o := range rec.Options {
		view.Options = append(view.Options, OptionView{
			OptionData: OptionData{
				Text:       o.Text,
				IsCorrect:  o.IsCorrect,
				OrderIndex: o.OrderIndex,
			},
			ID: o.ID,
		})
	}
	return view
}
