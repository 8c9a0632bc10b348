package sessionhandler

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"hr-eval-backend/db"
	candidatestore "hr-eval-backend/lib/candidate/store"
	evaluationstore "hr-eval-backend/lib/evaluation/store"
	planstore "hr-eval-backend/lib/plan/store"
	questionstore "hr-eval-backend/lib/question/store"
	reportstore "hr-eval-backend/lib/report/store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/lib/utils/lock"
	"hr-eval-backend/models"
	sessionapimodels "hr-eval-backend/models/api/session"
	dbmodels "hr-eval-backend/models/db"
)

const lockWait = 5 * time.Second

type Provider interface {
	Create(request sessionapimodels.SessionData, createdByID string) (sessionID string, err error)
	Update(sessionID string, request sessionapimodels.SessionData) error
	Get(sessionID string) (sessionapimodels.SessionView, error)
	List(filter sessionapimodels.SessionFilter) ([]sessionapimodels.SessionView, int64, error)
	Start(ctx context.Context, sessionID string) error
	Pause(ctx context.Context, sessionID string) error
	Resume(ctx context.Context, sessionID string) error
	Complete(ctx context.Context, sessionID string) error
	Cancel(ctx context.Context, sessionID string) error
	SetCurrentCandidate(ctx context.Context, sessionID, candidateID, requesterID string) (candidateName string, err error)
	AdvanceNext(ctx context.Context, sessionID, evaluatorID string) (sessionapimodels.AdvanceResult, error)
	Progress(sessionID string) (sessionapimodels.ProgressView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           sessionstore.NewInstance(db.DB),
		planStore:       planstore.NewInstance(db.DB),
		candidateStore:  candidatestore.NewInstance(db.DB),
		evaluationStore: evaluationstore.NewInstance(db.DB),
		reportStore:     reportstore.NewInstance(db.DB),
		questionStore:   questionstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           sessionstore.Provider
	planStore       planstore.Provider
	candidateStore  candidatestore.Provider
	evaluationStore evaluationstore.Provider
	reportStore     reportstore.Provider
	questionStore   questionstore.Provider
}

// Create заводит сессию в статусе подготовки. На пару план-дата
// допускается не более одной сессии.
func (i impl) Create(request sessionapimodels.SessionData, createdByID string) (sessionID string, err error) {
	plan, err := i.planStore.GetByID(request.PlanID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения плана набора")
		return "", err
	}
	if plan == nil {
		return "", models.NotFoundError("план набора не найден")
	}
	if !plan.IsActive {
		return "", models.ConflictError("план набора не активен")
	}
	sessionDate := normalizeDate(request.SessionDate)
	existed, err := i.store.FindByPlanAndDate(request.PlanID, sessionDate)
	if err != nil {
		log.WithError(err).Error("Ошибка поиска сессии по плану и дате")
		return "", err
	}
	if existed != nil {
		return "", models.ConflictError("на эту дату по плану уже есть сессия")
	}
	rec := dbmodels.EvaluationSession{
		Title:       request.Title,
		PlanID:      request.PlanID,
		SessionDate: sessionDate,
		Status:      models.SessionStatusSetup,
		CreatedByID: createdByID,
	}
	sessionID, err = i.store.Create(rec, request.EvaluatorIDs)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания сессии")
		return "", err
	}
	log.
		WithField("session_id", sessionID).
		Info("Создана сессия оценивания")
	return sessionID, nil
}

func (i impl) Update(sessionID string, request sessionapimodels.SessionData) error {
	logger := log.WithField("session_id", sessionID)
	rec, err := i.store.GetByID(sessionID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения сессии")
		return err
	}
	if rec == nil {
		return models.NotFoundError("сессия не найдена")
	}
	if rec.Status.IsTerminal() {
		return models.ConflictError("сессия завершена, изменение недоступно")
	}
	err = i.store.Update(sessionID, map[string]interface{}{"Title": request.Title})
	if err != nil {
		logger.WithError(err).Error("Ошибка обновления сессии")
		return err
	}
	if request.EvaluatorIDs != nil {
		if err = i.store.SetEvaluators(sessionID, request.EvaluatorIDs); err != nil {
			logger.WithError(err).Error("Ошибка обновления состава комиссии")
			return err
		}
	}
	logger.Info("Обновлена сессия оценивания")
	return nil
}

func (i impl) Get(sessionID string) (sessionapimodels.SessionView, error) {
	rec, err := i.store.GetByID(sessionID)
	if err != nil {
		log.WithField("session_id", sessionID).WithError(err).Error("Ошибка получения сессии")
		return sessionapimodels.SessionView{}, err
	}
	if rec == nil {
		return sessionapimodels.SessionView{}, models.NotFoundError("сессия не найдена")
	}
	return sessionapimodels.SessionConvert(*rec), nil
}

func (i impl) List(filter sessionapimodels.SessionFilter) ([]sessionapimodels.SessionView, int64, error) {
	list, rowCount, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка сессий")
		return nil, 0, err
	}
	result := make([]sessionapimodels.SessionView, 0, len(list))
	for _, rec := range list {
		result = append(result, sessionapimodels.SessionConvert(rec))
	}
	return result, rowCount, nil
}

// Start активирует сессию. Любая другая активная сессия при этом
// приостанавливается, активной остаётся ровно одна. Если текущий
// кандидат не назначен, выбирается первый неоценённый по порядку
// добавления в план.
func (i impl) Start(ctx context.Context, sessionID string) error {
	return i.withSessionLock(ctx, sessionID, func() error {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NotFoundError("сессия не найдена")
		}
		if rec.Status == models.SessionStatusActive {
			return nil
		}
		if rec.Status.IsTerminal() {
			return models.ConflictError("сессия завершена, запуск недоступен")
		}
		var startTime *time.Time
		if rec.StartTime == nil {
			now := time.Now()
			startTime = &now
		}
		candidateID, err := i.autoSelectCandidate(rec)
		if err != nil {
			return err
		}
		if err = i.store.ActivateExclusive(sessionID, startTime, candidateID); err != nil {
			return err
		}
		log.
			WithField("session_id", sessionID).
			Info("Сессия активирована")
		return nil
	})
}

func (i impl) Pause(ctx context.Context, sessionID string) error {
	return i.withSessionLock(ctx, sessionID, func() error {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NotFoundError("сессия не найдена")
		}
		if rec.Status != models.SessionStatusActive {
			return models.ConflictError("приостановить можно только активную сессию")
		}
		if err = i.store.Update(sessionID, map[string]interface{}{"Status": models.SessionStatusPaused}); err != nil {
			return err
		}
		log.
			WithField("session_id", sessionID).
			Info("Сессия приостановлена")
		return nil
	})
}

// Resume возобновляет приостановленную сессию, из других статусов
// возобновление недоступно.
func (i impl) Resume(ctx context.Context, sessionID string) error {
	return i.withSessionLock(ctx, sessionID, func() error {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NotFoundError("сессия не найдена")
		}
		if rec.Status != models.SessionStatusPaused {
			return models.ConflictError("возобновить можно только приостановленную сессию")
		}
		candidateID, err := i.autoSelectCandidate(rec)
		if err != nil {
			return err
		}
		if err = i.store.ActivateExclusive(sessionID, nil, candidateID); err != nil {
			return err
		}
		log.
			WithField("session_id", sessionID).
			Info("Сессия возобновлена")
		return nil
	})
}

func (i impl) Complete(ctx context.Context, sessionID string) error {
	return i.withSessionLock(ctx, sessionID, func() error {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NotFoundError("сессия не найдена")
		}
		if rec.Status != models.SessionStatusActive && rec.Status != models.SessionStatusPaused {
			return models.ConflictError("завершить можно только запущенную сессию")
		}
		updMap := map[string]interface{}{
			"Status":             models.SessionStatusCompleted,
			"EndTime":            time.Now(),
			"CurrentCandidateID": nil,
			"CurrentQuestionID":  nil,
		}
		if err = i.store.Update(sessionID, updMap); err != nil {
			return err
		}
		log.
			WithField("session_id", sessionID).
			Info("Сессия завершена")
		return nil
	})
}

func (i impl) Cancel(ctx context.Context, sessionID string) error {
	return i.withSessionLock(ctx, sessionID, func() error {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NotFoundError("сессия не найдена")
		}
		if rec.Status.IsTerminal() {
			return models.ConflictError("сессия уже завершена")
		}
		updMap := map[string]interface{}{
			"Status":             models.SessionStatusCancelled,
			"CurrentCandidateID": nil,
			"CurrentQuestionID":  nil,
		}
		if err = i.store.Update(sessionID, updMap); err != nil {
			return err
		}
		log.
			WithField("session_id", sessionID).
			Info("Сессия отменена")
		return nil
	})
}

// SetCurrentCandidate назначает текущего кандидата. Операция доступна
// только экзаменатору, создавшему сессию.
func (i impl) SetCurrentCandidate(ctx context.Context, sessionID, candidateID, requesterID string) (candidateName string, err error) {
	err = i.withSessionLock(ctx, sessionID, func() error {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NotFoundError("сессия не найдена")
		}
		if rec.CreatedByID != requesterID {
			return models.ForbiddenError("смена кандидата доступна только создателю сессии")
		}
		if rec.Status != models.SessionStatusActive {
			return models.ConflictError("смена кандидата доступна только в активной сессии")
		}
		candidate, err := i.candidateStore.GetByID(candidateID)
		if err != nil {
			return err
		}
		if candidate == nil {
			return models.NotFoundError("кандидат не найден")
		}
		if candidate.PlanID != rec.PlanID {
			return models.NotFoundError("кандидат не относится к плану сессии")
		}
		if err = i.store.Update(sessionID, map[string]interface{}{"CurrentCandidateID": candidateID}); err != nil {
			return err
		}
		candidateName = candidate.Name
		log.
			WithField("session_id", sessionID).
			WithField("candidate_id", candidateID).
			Info("Сменен текущий кандидат сессии")
		return nil
	})
	if err != nil {
		return "", err
	}
	return candidateName, nil
}

// AdvanceNext переводит указатель на следующего неоценённого кандидата
// в порядке создания. Кандидаты, по которым в сессии уже есть
// завершённый лист опроса или отчёт, пропускаются. Когда неоценённых
// не осталось, возвращается признак no_candidates_remaining, указатель
// при этом очищается. Для назначенного кандидата сразу заводится
// пустой лист опроса запросившего члена комиссии.
func (i impl) AdvanceNext(ctx context.Context, sessionID, evaluatorID string) (result sessionapimodels.AdvanceResult, err error) {
	err = i.withSessionLock(ctx, sessionID, func() error {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NotFoundError("сессия не найдена")
		}
		if rec.Status != models.SessionStatusActive {
			return models.ConflictError("переход доступен только в активной сессии")
		}
		candidates, err := i.candidateStore.ListByPlan(rec.PlanID)
		if err != nil {
			return err
		}
		unevaluated, err := i.candidateStore.ListUnevaluatedByPlan(rec.PlanID, sessionID)
		if err != nil {
			return err
		}
		next := nextCandidate(candidates, unevaluated, rec.CurrentCandidateID)
		if next == nil {
			result = sessionapimodels.AdvanceResult{NoCandidatesRemaining: true}
			return i.store.Update(sessionID, map[string]interface{}{"CurrentCandidateID": nil})
		}
		if err = i.store.Update(sessionID, map[string]interface{}{"CurrentCandidateID": next.ID}); err != nil {
			return err
		}
		if _, err = i.questionStore.EnsureEvaluation(sessionID, next.ID, evaluatorID); err != nil {
			return err
		}
		result = sessionapimodels.AdvanceResult{
			CandidateID:   next.ID,
			CandidateName: next.Name,
		}
		log.
			WithField("session_id", sessionID).
			WithField("candidate_id", next.ID).
			Info("Сессия перешла к следующему кандидату")
		return nil
	})
	if err != nil {
		return sessionapimodels.AdvanceResult{}, err
	}
	return result, nil
}

func (i impl) Progress(sessionID string) (sessionapimodels.ProgressView, error) {
	rec, err := i.store.GetByID(sessionID)
	if err != nil {
		return sessionapimodels.ProgressView{}, err
	}
	if rec == nil {
		return sessionapimodels.ProgressView{}, models.NotFoundError("сессия не найдена")
	}
	total, err := i.planStore.CandidateCount(rec.PlanID)
	if err != nil {
		return sessionapimodels.ProgressView{}, err
	}
	evaluated, err := i.evaluationStore.EvaluatedCandidateCount(sessionID)
	if err != nil {
		return sessionapimodels.ProgressView{}, err
	}
	finalized, err := i.reportStore.CountBySession(sessionID)
	if err != nil {
		return sessionapimodels.ProgressView{}, err
	}
	view := sessionapimodels.ProgressView{
		TotalCandidates:     total,
		EvaluatedCandidates: evaluated,
		FinalizedReports:    finalized,
	}
	if total > 0 {
		view.ProgressPercent = float64(evaluated) / float64(total) * 100
	}
	return view, nil
}

// autoSelectCandidate возвращает первого неоценённого кандидата плана,
// если текущий кандидат ещё не назначен.
func (i impl) autoSelectCandidate(rec *dbmodels.EvaluationSession) (*string, error) {
	if rec.CurrentCandidateID != nil {
		return nil, nil
	}
	unevaluated, err := i.candidateStore.ListUnevaluatedByPlan(rec.PlanID, rec.ID)
	if err != nil {
		return nil, err
	}
	if len(unevaluated) == 0 {
		return nil, nil
	}
	return &unevaluated[0].ID, nil
}

func (i impl) withSessionLock(ctx context.Context, sessionID string, safeCode func() error) error {
	success, err := lock.WithDelay(ctx, "session:"+sessionID, lockWait, safeCode)
	if err != nil {
		return err
	}
	if !success {
		return models.ConflictError("сессия занята другой операцией")
	}
	return nil
}

// normalizeDate приводит дату к началу суток UTC, пустая дата
// заменяется на сегодняшнюю.
func normalizeDate(date datatypes.Date) datatypes.Date {
	t := time.Time(date)
	if t.IsZero() {
		t = time.Now()
	}
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

func nextCandidate(candidates, unevaluated []dbmodels.Candidate, currentID *string) *dbmodels.Candidate {
	if len(unevaluated) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(unevaluated))
	for _, candidate := range unevaluated {
		allowed[candidate.ID] = true
	}
	startIdx := 0
	if currentID != nil {
		for idx, candidate := range candidates {
			if candidate.ID == *currentID {
				startIdx = idx + 1
				break
			}
		}
	}
	for idx := startIdx; idx < len(candidates); idx++ {
		if allowed[candidates[idx].ID] {
			return &candidates[idx]
		}
	}
	return nil
}
