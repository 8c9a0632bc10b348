package evaluationhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	candidatestore "hr-eval-backend/lib/candidate/store"
	criteriastore "hr-eval-backend/lib/evaluation/criteria-store"
	"hr-eval-backend/lib/evaluation/scoring"
	evaluationstore "hr-eval-backend/lib/evaluation/store"
	topicstore "hr-eval-backend/lib/evaluation/topic-store"
	sessionstore "hr-eval-backend/lib/session/store"
	"hr-eval-backend/models"
	evaluationapimodels "hr-eval-backend/models/api/evaluation"
	dbmodels "hr-eval-backend/models/db"
)

type fixture struct {
	handler   impl
	db        *gorm.DB
	session   dbmodels.EvaluationSession
	candidate dbmodels.Candidate
	evaluator dbmodels.AppUser
	topic     dbmodels.EvaluationTopic
	criteria  []dbmodels.EvaluationCriteria
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&dbmodels.AppUser{},
		&dbmodels.Plan{},
		&dbmodels.Candidate{},
		&dbmodels.CandidateQualification{},
		&dbmodels.CandidateExperience{},
		&dbmodels.EvaluationQuestion{},
		&dbmodels.EvaluationSession{},
		&dbmodels.EvaluationTopic{},
		&dbmodels.EvaluationCriteria{},
		&dbmodels.CandidateTopicEvaluation{},
	))

	evaluator := dbmodels.AppUser{Email: "petrov@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, db.Create(&evaluator).Error)

	plan := dbmodels.Plan{Title: "Набор", IsActive: true}
	require.NoError(t, db.Create(&plan).Error)

	candidate := dbmodels.Candidate{Name: "Иванов Иван", PlanID: plan.ID}
	require.NoError(t, db.Create(&candidate).Error)

	session := dbmodels.EvaluationSession{
		Title:              "Сессия",
		PlanID:             plan.ID,
		Status:             models.SessionStatusActive,
		CreatedByID:        evaluator.ID,
		CurrentCandidateID: &candidate.ID,
	}
	require.NoError(t, db.Create(&session).Error)

	topic := dbmodels.EvaluationTopic{Name: "Профессиональные знания", Weight: 2, OrderIndex: 1, IsActive: true}
	require.NoError(t, db.Create(&topic).Error)

	criteria := make([]dbmodels.EvaluationCriteria, 0, 3)
	for idx, name := range []string{"Ниже ожиданий", "Соответствует ожиданиям", "Выше ожиданий"} {
		c := dbmodels.EvaluationCriteria{TopicID: topic.ID, Name: name, OrderIndex: idx + 1, IsActive: true}
		require.NoError(t, db.Create(&c).Error)
		criteria = append(criteria, c)
	}

	handler := impl{
		topicStore:     topicstore.NewInstance(db),
		criteriaStore:  criteriastore.NewInstance(db),
		store:          evaluationstore.NewInstance(db),
		sessionStore:   sessionstore.NewInstance(db),
		candidateStore: candidatestore.NewInstance(db),
	}
	return fixture{
		handler:   handler,
		db:        db,
		session:   session,
		candidate: candidate,
		evaluator: evaluator,
		topic:     topic,
		criteria:  criteria,
	}
}

func TestSaveEvaluation(t *testing.T) {
	f := setupFixture(t)

	t.Run(`сохранение и перезапись`, func(t *testing.T) {
		firstID, err := f.handler.SaveEvaluation(f.session.ID, f.evaluator.ID, evaluationapimodels.SaveEvaluationRequest{
			CandidateID: f.candidate.ID,
			TopicID:     f.topic.ID,
			CriteriaID:  f.criteria[0].ID,
		})
		require.NoError(t, err)
		require.NotEmpty(t, firstID)

		secondID, err := f.handler.SaveEvaluation(f.session.ID, f.evaluator.ID, evaluationapimodels.SaveEvaluationRequest{
			CandidateID: f.candidate.ID,
			TopicID:     f.topic.ID,
			CriteriaID:  f.criteria[2].ID,
			Notes:       "уверенные ответы",
		})
		require.NoError(t, err)
		require.Equal(t, firstID, secondID, "повторная оценка перезаписывает прежнюю")

		list, err := f.handler.ListMine(f.session.ID, f.candidate.ID, f.evaluator.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, f.criteria[2].ID, list[0].CriteriaID)
	})

	t.Run(`чужой пользователь`, func(t *testing.T) {
		stranger := dbmodels.AppUser{Email: "stranger@example.com", Role: models.UserRoleEvaluator, IsActive: true}
		require.NoError(t, f.db.Create(&stranger).Error)

		_, err := f.handler.SaveEvaluation(f.session.ID, stranger.ID, evaluationapimodels.SaveEvaluationRequest{
			CandidateID: f.candidate.ID,
			TopicID:     f.topic.ID,
			CriteriaID:  f.criteria[0].ID,
		})
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindForbidden, kind)
	})

	t.Run(`критерий чужой темы`, func(t *testing.T) {
		otherTopic := dbmodels.EvaluationTopic{Name: "Другая тема", Weight: 1, OrderIndex: 2, IsActive: true}
		require.NoError(t, f.db.Create(&otherTopic).Error)

		_, err := f.handler.SaveEvaluation(f.session.ID, f.evaluator.ID, evaluationapimodels.SaveEvaluationRequest{
			CandidateID: f.candidate.ID,
			TopicID:     otherTopic.ID,
			CriteriaID:  f.criteria[0].ID,
		})
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindConflict, kind)
	})

	t.Run(`кандидат из чужого плана`, func(t *testing.T) {
		otherPlan := dbmodels.Plan{Title: "Другой набор", IsActive: true}
		require.NoError(t, f.db.Create(&otherPlan).Error)
		stranger := dbmodels.Candidate{Name: "Чужой", PlanID: otherPlan.ID}
		require.NoError(t, f.db.Create(&stranger).Error)

		_, err := f.handler.SaveEvaluation(f.session.ID, f.evaluator.ID, evaluationapimodels.SaveEvaluationRequest{
			CandidateID: stranger.ID,
			TopicID:     f.topic.ID,
			CriteriaID:  f.criteria[0].ID,
		})
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindNotFound, kind)
	})

	t.Run(`кандидат не текущий в сессии`, func(t *testing.T) {
		other := dbmodels.Candidate{Name: "Петров Пётр", PlanID: f.candidate.PlanID}
		require.NoError(t, f.db.Create(&other).Error)

		_, err := f.handler.SaveEvaluation(f.session.ID, f.evaluator.ID, evaluationapimodels.SaveEvaluationRequest{
			CandidateID: other.ID,
			TopicID:     f.topic.ID,
			CriteriaID:  f.criteria[0].ID,
		})
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindConflict, kind)
	})

	t.Run(`неактивная сессия`, func(t *testing.T) {
		require.NoError(t, f.db.Model(&f.session).Update("status", models.SessionStatusPaused).Error)
		defer func() {
			require.NoError(t, f.db.Model(&f.session).Update("status", models.SessionStatusActive).Error)
		}()

		_, err := f.handler.SaveEvaluation(f.session.ID, f.evaluator.ID, evaluationapimodels.SaveEvaluationRequest{
			CandidateID: f.candidate.ID,
			TopicID:     f.topic.ID,
			CriteriaID:  f.criteria[0].ID,
		})
		require.Error(t, err)
		kind, ok := models.GetErrorKind(err)
		require.True(t, ok)
		require.Equal(t, models.ErrKindConflict, kind)
	})
}

func TestSummary(t *testing.T) {
	f := setupFixture(t)

	secondEvaluator := dbmodels.AppUser{Email: "sidorov@example.com", Role: models.UserRoleEvaluator, IsActive: true}
	require.NoError(t, f.db.Create(&secondEvaluator).Error)
	require.NoError(t, f.db.Model(&f.session).Association("Evaluators").Append(&secondEvaluator))

	// первый выбирает средний критерий (66.67), второй высший (100)
	_, err := f.handler.SaveEvaluation(f.session.ID, f.evaluator.ID, evaluationapimodels.SaveEvaluationRequest{
		CandidateID: f.candidate.ID,
		TopicID:     f.topic.ID,
		CriteriaID:  f.criteria[1].ID,
	})
	require.NoError(t, err)
	_, err = f.handler.SaveEvaluation(f.session.ID, secondEvaluator.ID, evaluationapimodels.SaveEvaluationRequest{
		CandidateID: f.candidate.ID,
		TopicID:     f.topic.ID,
		CriteriaID:  f.criteria[2].ID,
	})
	require.NoError(t, err)

	summary, err := f.handler.Summary(f.session.ID, f.candidate.ID)
	require.NoError(t, err)
	require.Equal(t, 1, summary.EvaluatedTopics)
	require.Equal(t, 1, summary.TotalTopics)
	require.Len(t, summary.Topics, 1)
	require.InDelta(t, 83.3, summary.Topics[0].AveragePercent, 0.1)
	require.InDelta(t, 83.3, summary.TotalScore, 0.1)
	require.Equal(t, scoring.GradeVeryGood, summary.Grade)
}
