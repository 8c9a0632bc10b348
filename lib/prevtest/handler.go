package prevtesthandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hr-eval-backend/db"
	candidatestore "hr-eval-backend/lib/candidate/store"
	prevteststore "hr-eval-backend/lib/prevtest/store"
	"hr-eval-backend/models"
	prevtestapimodels "hr-eval-backend/models/api/prevtest"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	CreateCategory(request prevtestapimodels.CategoryData) (categoryID string, err error)
	UpdateCategory(categoryID string, request prevtestapimodels.CategoryData) error
	DeleteCategory(categoryID string) error
	ListCategories(onlyActive bool) ([]prevtestapimodels.CategoryView, error)

	SaveResult(enteredByID string, request prevtestapimodels.ResultData) (id string, err error)
	DeleteResult(resultID string) error
	ListByCandidate(candidateID string) ([]prevtestapimodels.ResultView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          prevteststore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store          prevteststore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) CreateCategory(request prevtestapimodels.CategoryData) (categoryID string, err error) {
	rec := dbmodels.TestCategory{
		Name:        request.Name,
		Description: request.Description,
		MaxScore:    request.MaxScore,
		Type:        models.ExaminationTypePreviousTest,
		IsActive:    true,
	}
	if request.IsActive != nil {
		rec.IsActive = *request.IsActive
	}
	categoryID, err = i.store.CreateCategory(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания категории теста")
		return "", err
	}
	log.
		WithField("category_id", categoryID).
		Info("Создана категория теста")
	return categoryID, nil
}

func (i impl) UpdateCategory(categoryID string, request prevtestapimodels.CategoryData) error {
	logger := log.WithField("category_id", categoryID)
	rec, err := i.store.GetCategory(categoryID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения категории теста")
		return err
	}
	if rec == nil {
		return models.NotFoundError("категория теста не найдена")
	}
	updMap := map[string]interface{}{
		"Name":        request.Name,
		"Description": request.Description,
		"MaxScore":    request.MaxScore,
	}
	if request.IsActive != nil {
		updMap["IsActive"] = *request.IsActive
	}
	err = i.store.UpdateCategory(categoryID, updMap)
	if err != nil {
		logger.WithError(err).Error("Ошибка обновления категории теста")
		return err
	}
	logger.Info("Обновлена категория теста")
	return nil
}

func (i impl) DeleteCategory(categoryID string) error {
	logger := log.WithField("category_id", categoryID)
	rec, err := i.store.GetCategory(categoryID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения категории теста")
		return err
	}
	if rec == nil {
		return models.NotFoundError("категория теста не найдена")
	}
	err = i.store.DeleteCategory(categoryID)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления категории теста")
		return err
	}
	logger.Info("Удалена категория теста")
	return nil
}

func (i impl) ListCategories(onlyActive bool) ([]prevtestapimodels.CategoryView, error) {
	list, err := i.store.ListCategories(onlyActive)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка категорий тестов")
		return nil, err
	}
	result := make([]prevtestapimodels.CategoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, prevtestapimodels.CategoryConvert(rec))
	}
	return result, nil
}

// SaveResult сохраняет результат ранее пройденного теста. Повторный
// ввод по той же категории перезаписывает прежний результат.
func (i impl) SaveResult(enteredByID string, request prevtestapimodels.ResultData) (id string, err error) {
	logger := log.WithField("candidate_id", request.CandidateID)
	candidate, err := i.candidateStore.GetByID(request.CandidateID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения кандидата")
		return "", err
	}
	if candidate == nil {
		return "", models.NotFoundError("кандидат не найден")
	}
	category, err := i.store.GetCategory(request.CategoryID)
	if err != nil {
		return "", err
	}
	if category == nil || !category.IsActive {
		return "", models.NotFoundError("категория теста не найдена или не активна")
	}
	if request.Score > category.MaxScore {
		return "", models.ValidationError("балл превышает максимум категории")
	}
	id, err = i.store.UpsertResult(dbmodels.CandidateTestResult{
		CandidateID: request.CandidateID,
		CategoryID:  request.CategoryID,
		Score:       request.Score,
		TakenAt:     request.TakenAt,
		Notes:       request.Notes,
		EnteredByID: enteredByID,
	})
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения результата теста")
		return "", err
	}
	logger.
		WithField("category_id", request.CategoryID).
		Info("Сохранен результат теста")
	return id, nil
}

func (i impl) DeleteResult(resultID string) error {
	logger := log.WithField("result_id", resultID)
	rec, err := i.store.GetResult(resultID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения результата теста")
		return err
	}
	if rec == nil {
		return models.NotFoundError("результат теста не найден")
	}
	err = i.store.DeleteResult(resultID)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления результата теста")
		return err
	}
	logger.Info("Удален результат теста")
	return nil
}

func (i impl) ListByCandidate(candidateID string) ([]prevtestapimodels.ResultView, error) {
	list, err := i.store.ListByCandidate(candidateID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения результатов тестов")
		return nil, err
	}
	result := make([]prevtestapimodels.ResultView, 0, len(list))
	for _, rec := range list {
		result = append(result, prevtestapimodels.ResultConvert(rec))
	}
	return result, nil
}
