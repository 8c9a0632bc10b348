package planhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hr-eval-backend/db"
	planstore "hr-eval-backend/lib/plan/store"
	"hr-eval-backend/models"
	planapimodels "hr-eval-backend/models/api/plan"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(request planapimodels.PlanData) (planID string, err error)
	Update(planID string, request planapimodels.PlanData) error
	Delete(planID string) error
	Get(planID string) (planapimodels.PlanView, error)
	List(filter planapimodels.PlanFilter) ([]planapimodels.PlanView, int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: planstore.NewInstance(db.DB),
	}
}

type impl struct {
	store planstore.Provider
}

func (i impl) Create(request planapimodels.PlanData) (planID string, err error) {
	rec := dbmodels.Plan{
		Title:      request.Title,
		Department: request.Department,
		Notes:      request.Notes,
		IsActive:   true,
	}
	if request.IsActive != nil {
		rec.IsActive = *request.IsActive
	}
	planID, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания плана набора")
		return "", err
	}
	log.
		WithField("plan_id", planID).
		Info("Создан план набора")
	return planID, nil
}

func (i impl) Update(planID string, request planapimodels.PlanData) error {
	logger := log.WithField("plan_id", planID)
	rec, err := i.store.GetByID(planID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения плана набора")
		return err
	}
	if rec == nil {
		return models.NotFoundError("план набора не найден")
	}
	updMap := map[string]interface{}{
		"Title":      request.Title,
		"Department": request.Department,
		"Notes":      request.Notes,
	}
	if request.IsActive != nil {
		updMap["IsActive"] = *request.IsActive
	}
	err = i.store.Update(planID, updMap)
	if err != nil {
		logger.WithError(err).Error("Ошибка обновления плана набора")
		return err
	}
	logger.Info("Обновлен план набора")
	return nil
}

func (i impl) Delete(planID string) error {
	logger := log.WithField("plan_id", planID)
	rec, err := i.store.GetByID(planID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения плана набора")
		return err
	}
	if rec == nil {
		return models.NotFoundError("план набора не найден")
	}
	count, err := i.store.CandidateCount(planID)
	if err != nil {
		logger.WithError(err).Error("Ошибка подсчета кандидатов плана")
		return err
	}
	if count > 0 {
		return models.ConflictError("нельзя удалить план с кандидатами")
	}
	err = i.store.Delete(planID)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления плана набора")
		return err
	}
	logger.Info("Удален план набора")
	return nil
}

func (i impl) Get(planID string) (planapimodels.PlanView, error) {
	rec, err := i.store.GetByID(planID)
	if err != nil {
		log.WithField("plan_id", planID).WithError(err).Error("Ошибка получения плана набора")
		return planapimodels.PlanView{}, err
	}
	if rec == nil {
		return planapimodels.PlanView{}, models.NotFoundError("план набора не найден")
	}
	count, err := i.store.CandidateCount(planID)
	if err != nil {
		return planapimodels.PlanView{}, err
	}
	return planapimodels.PlanConvert(*rec, count), nil
}

func (i impl) List(filter planapimodels.PlanFilter) ([]planapimodels.PlanView, int64, error) {
	list, rowCount, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка планов набора")
		return nil, 0, err
	}
	result := make([]planapimodels.PlanView, 0, len(list))
	for _, rec := range list {
		count, err := i.store.CandidateCount(rec.ID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, planapimodels.PlanConvert(rec, count))
	}
	return result, rowCount, nil
}
