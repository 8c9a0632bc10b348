package candidatehandler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"hr-eval-backend/db"
	candidatestore "hr-eval-backend/lib/candidate/store"
	filestore "hr-eval-backend/lib/file-storage/store"
	planstore "hr-eval-backend/lib/plan/store"
	"hr-eval-backend/models"
	candidateapimodels "hr-eval-backend/models/api/candidate"
	dbmodels "hr-eval-backend/models/db"
	s3client "hr-eval-backend/s3"
)

type Provider interface {
	Create(request candidateapimodels.CandidateData) (candidateID string, err error)
	Update(candidateID string, request candidateapimodels.CandidateData) error
	Delete(ctx context.Context, candidateID string) error
	Get(candidateID string) (candidateapimodels.CandidateView, error)
	List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error)
	ChangeStatus(candidateID string, status models.ApplicationStatus) error
	UploadPhoto(ctx context.Context, candidateID, fileName, contentType string, size int64, reader io.Reader) error
	AddQualification(candidateID string, request candidateapimodels.QualificationData) (id string, err error)
	DeleteQualification(candidateID, qualificationID string) error
	AddExperience(candidateID string, request candidateapimodels.ExperienceData) (id string, err error)
	DeleteExperience(candidateID, experienceID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     candidatestore.NewInstance(db.DB),
		planStore: planstore.NewInstance(db.DB),
		fileStore: filestore.NewInstance(db.DB),
	}
}

type impl struct {
	store     candidatestore.Provider
	planStore planstore.Provider
	fileStore filestore.Provider
}

func (i impl) Create(request candidateapimodels.CandidateData) (candidateID string, err error) {
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
	rec := dbmodels.Candidate{
		Name:                 request.Name,
		BirthDate:            request.BirthDate,
		Gender:               request.Gender,
		PrimaryQualification: request.PrimaryQualification,
		University:           request.University,
		GeneralDegree:        request.GeneralDegree,
		GraduationYear:       request.GraduationYear,
		MaritalStatus:        request.MaritalStatus,
		NumberOfChildren:     request.NumberOfChildren,
		Address:              request.Address,
		PhoneNumber:          request.PhoneNumber,
		Email:                request.Email,
		Notes:                request.Notes,
		PlanID:               request.PlanID,
		ApplicationStatus:    models.ApplicationStatusApplied,
	}
	candidateID, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания кандидата")
		return "", err
	}
	log.
		WithField("candidate_id", candidateID).
		Info("Создан кандидат")
	return candidateID, nil
}

func (i impl) Update(candidateID string, request candidateapimodels.CandidateData) error {
	logger := log.WithField("candidate_id", candidateID)
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения кандидата")
		return err
	}
	if rec == nil {
		return models.NotFoundError("кандидат не найден")
	}
	updMap := map[string]interface{}{
		"Name":                 request.Name,
		"BirthDate":            request.BirthDate,
		"Gender":               request.Gender,
		"PrimaryQualification": request.PrimaryQualification,
		"University":           request.University,
		"GeneralDegree":        request.GeneralDegree,
		"GraduationYear":       request.GraduationYear,
		"MaritalStatus":        request.MaritalStatus,
		"NumberOfChildren":     request.NumberOfChildren,
		"Address":              request.Address,
		"PhoneNumber":          request.PhoneNumber,
		"Email":                request.Email,
		"Notes":                request.Notes,
	}
	err = i.store.Update(candidateID, updMap)
	if err != nil {
		logger.WithError(err).Error("Ошибка обновления кандидата")
		return err
	}
	logger.Info("Обновлен кандидат")
	return nil
}

func (i impl) Delete(ctx context.Context, candidateID string) error {
	logger := log.WithField("candidate_id", candidateID)
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения кандидата")
		return err
	}
	if rec == nil {
		return models.NotFoundError("кандидат не найден")
	}
	if rec.PhotoObjectKey != "" && s3client.Instance != nil {
		if err = s3client.Instance.DeleteObject(ctx, rec.PhotoObjectKey); err != nil {
			logger.WithError(err).Warn("Ошибка удаления фото кандидата из хранилища")
		}
	}
	err = i.store.Delete(candidateID)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления кандидата")
		return err
	}
	logger.Info("Удален кандидат")
	return nil
}

func (i impl) Get(candidateID string) (candidateapimodels.CandidateView, error) {
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		log.WithField("candidate_id", candidateID).WithError(err).Error("Ошибка получения кандидата")
		return candidateapimodels.CandidateView{}, err
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, models.NotFoundError("кандидат не найден")
	}
	return candidateapimodels.CandidateConvert(*rec, i.photoUrl(*rec)), nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	list, rowCount, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка кандидатов")
		return nil, 0, err
	}
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.CandidateConvert(rec, i.photoUrl(rec)))
	}
	return result, rowCount, nil
}

func (i impl) ChangeStatus(candidateID string, status models.ApplicationStatus) error {
	logger := log.WithField("candidate_id", candidateID)
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения кандидата")
		return err
	}
	if rec == nil {
		return models.NotFoundError("кандидат не найден")
	}
	err = i.store.Update(candidateID, map[string]interface{}{"ApplicationStatus": status})
	if err != nil {
		logger.WithError(err).Error("Ошибка смены статуса заявки")
		return err
	}
	logger.
		WithField("status", status).
		Info("Изменен статус заявки кандидата")
	return nil
}

func (i impl) UploadPhoto(ctx context.Context, candidateID, fileName, contentType string, size int64, reader io.Reader) error {
	logger := log.WithField("candidate_id", candidateID)
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения кандидата")
		return err
	}
	if rec == nil {
		return models.NotFoundError("кандидат не найден")
	}
	if s3client.Instance == nil {
		return models.ConflictError("объектное хранилище не настроено")
	}
	objectKey := fmt.Sprintf("candidates/%s/photo-%s", candidateID, uuid.NewString())
	err = s3client.Instance.UploadObject(ctx, objectKey, reader, size, contentType)
	if err != nil {
		logger.WithError(err).Error("Ошибка загрузки фото в хранилище")
		return err
	}
	if rec.PhotoObjectKey != "" {
		if err = s3client.Instance.DeleteObject(ctx, rec.PhotoObjectKey); err != nil {
			logger.WithError(err).Warn("Ошибка удаления старого фото")
		}
	}
	err = i.fileStore.Create(dbmodels.FileStorage{
		Name:        fileName,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        size,
		CandidateID: &candidateID,
	})
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения метаданных файла")
		return err
	}
	err = i.store.Update(candidateID, map[string]interface{}{"PhotoObjectKey": objectKey})
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения ссылки на фото")
		return err
	}
	logger.Info("Загружено фото кандидата")
	return nil
}

func (i impl) AddQualification(candidateID string, request candidateapimodels.QualificationData) (id string, err error) {
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", models.NotFoundError("кандидат не найден")
	}
	return i.store.AddQualification(dbmodels.CandidateQualification{
		CandidateID: candidateID,
		DegreeName:  request.DegreeName,
		DegreeDate:  request.DegreeDate,
	})
}

func (i impl) DeleteQualification(candidateID, qualificationID string) error {
	return i.store.DeleteQualification(candidateID, qualificationID)
}

func (i impl) AddExperience(candidateID string, request candidateapimodels.ExperienceData) (id string, err error) {
	rec, err := i.store.GetByID(candidateID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", models.NotFoundError("кандидат не найден")
	}
	return i.store.AddExperience(dbmodels.CandidateExperience{
		CandidateID: candidateID,
		JobTitle:    request.JobTitle,
		CompanyName: request.CompanyName,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
	})
}

func (i impl) DeleteExperience(candidateID, experienceID string) error {
	return i.store.DeleteExperience(candidateID, experienceID)
}

func (i impl) photoUrl(rec dbmodels.Candidate) string {
	if rec.PhotoObjectKey == "" || s3client.Instance == nil {
		return ""
	}
	url, err := s3client.Instance.PresignedGetURL(context.Background(), rec.PhotoObjectKey, time.Hour)
	if err != nil {
		log.WithField("candidate_id", rec.ID).WithError(err).Warn("Ошибка получения ссылки на фото")
		return ""
	}
	return url
}
