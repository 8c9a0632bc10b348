package models

// SessionStatus - статус сессии оценивания.
// Переходы: setup -> active <-> paused -> completed,
// cancelled доступен из любого незавершённого статуса.
type SessionStatus string

const (
	SessionStatusSetup     SessionStatus = "setup"
	SessionStatusActive    SessionStatus = "active"
	SessionStatusPaused    SessionStatus = "paused"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

var sessionStatusHumanName = map[SessionStatus]string{
	SessionStatusSetup:     "Подготовка",
	SessionStatusActive:    "Активна",
	SessionStatusPaused:    "Приостановлена",
	SessionStatusCompleted: "Завершена",
	SessionStatusCancelled: "Отменена",
}

func (s SessionStatus) ToHuman() string {
	if human, exist := sessionStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

type ApplicationStatus string

const (
	ApplicationStatusApplied            ApplicationStatus = "applied"
	ApplicationStatusScreening          ApplicationStatus = "screening"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusInterviewed        ApplicationStatus = "interviewed"
	ApplicationStatusAccepted           ApplicationStatus = "accepted"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
	ApplicationStatusOnHold             ApplicationStatus = "on_hold"
)

var applicationStatusHumanName = map[ApplicationStatus]string{
	ApplicationStatusApplied:            "Заявка подана",
	ApplicationStatusScreening:          "Первичный отбор",
	ApplicationStatusInterviewScheduled: "Собеседование назначено",
	ApplicationStatusInterviewed:        "Собеседование проведено",
	ApplicationStatusAccepted:           "Принят",
	ApplicationStatusRejected:           "Отклонён",
	ApplicationStatusOnHold:             "Отложен",
}

func (s ApplicationStatus) ToHuman() string {
	if human, exist := applicationStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ApplicationStatus) IsValid() bool {
	_, exist := applicationStatusHumanName[s]
	return exist
}

type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "mcq"
	QuestionTypeTrueFalse QuestionType = "true_false"
	QuestionTypeQA        QuestionType = "qa"
)

var questionTypeHumanName = map[QuestionType]string{
	QuestionTypeMCQ:       "Выбор из вариантов",
	QuestionTypeTrueFalse: "Верно/неверно",
	QuestionTypeQA:        "Вопрос-ответ",
}

func (t QuestionType) ToHuman() string {
	if human, exist := questionTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t QuestionType) IsValid() bool {
	_, exist := questionTypeHumanName[t]
	return exist
}

type Recommendation string

const (
	RecommendationHigh     Recommendation = "highly_recommended"
	RecommendationPositive Recommendation = "recommended"
	RecommendationNeutral  Recommendation = "neutral"
	RecommendationNegative Recommendation = "not_recommended"
	RecommendationRejected Recommendation = "rejected"
)

var recommendationHumanName = map[Recommendation]string{
	RecommendationHigh:     "Настоятельно рекомендован",
	RecommendationPositive: "Рекомендован",
	RecommendationNeutral:  "Нейтрально",
	RecommendationNegative: "Не рекомендован",
	RecommendationRejected: "Отклонён",
}

func (r Recommendation) IsValid() bool {
	_, exist := recommendationHumanName[r]
	return exist
}

func (r Recommendation) ToHuman() string {
	if human, exist := recommendationHumanName[r]; exist {
		return human
	}
	return string(r)
}

type ExaminationType string

const (
	ExaminationTypePreviousTest        ExaminationType = "previous_test"
	ExaminationTypeInterviewEvaluation ExaminationType = "interview_evaluation"
)

var examinationTypeHumanName = map[ExaminationType]string{
	ExaminationTypePreviousTest:        "Ранее пройденный тест",
	ExaminationTypeInterviewEvaluation: "Оценка на собеседовании",
}

func (t ExaminationType) ToHuman() string {
	if human, exist := examinationTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}
