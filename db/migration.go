package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "hr-eval-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.AppUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AppUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Plan{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Plan")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateQualification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateQualification")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateExperience{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateExperience")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationTopic{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationTopic")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationCriteria{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationCriteria")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationSession{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationSession")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateTopicEvaluation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateTopicEvaluation")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationReport{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationReport")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationQuestion{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationQuestion")
	}
	if err := DB.AutoMigrate(&dbmodels.QuestionOption{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры QuestionOption")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateEvaluation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateEvaluation")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationAnswer{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationAnswer")
	}
	if err := DB.AutoMigrate(&dbmodels.TestCategory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TestCategory")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateTestResult{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateTestResult")
	}
	if err := DB.AutoMigrate(&dbmodels.FileStorage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FileStorage")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
