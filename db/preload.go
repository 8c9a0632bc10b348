package db

import (
	log "github.com/sirupsen/logrus"

	"hr-eval-backend/config"
	userstore "hr-eval-backend/lib/auth/store"
	criteriastore "hr-eval-backend/lib/evaluation/criteria-store"
	topicstore "hr-eval-backend/lib/evaluation/topic-store"
	prevteststore "hr-eval-backend/lib/prevtest/store"
	authutils "hr-eval-backend/lib/utils/auth-utils"
	"hr-eval-backend/models"
	dbmodels "hr-eval-backend/models/db"
)

func InitPreload() {
	addSuperAdmin()
	fillTopics()
	fillTestCategories()
}

func addSuperAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("суперадмин не добавлен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	store := userstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.AppUser{
		IsActive:    true,
		Role:        models.UserRoleSuperAdmin,
		Password:    authutils.GetMD5Hash(config.Conf.Admin.Password),
		FirstName:   config.Conf.Admin.FirstName,
		LastName:    config.Conf.Admin.LastName,
		Email:       config.Conf.Admin.Email,
		PhoneNumber: config.Conf.Admin.PhoneNumber,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
	}
}

// Стартовый набор тем с критериями от "ниже ожиданий" до "значительно выше".
func fillTopics() {
	topics := topicstore.NewInstance(DB)
	count, err := topics.Count()
	if err != nil {
		log.WithError(err).Error("ошибка проверки справочника тем")
		return
	}
	if count > 0 {
		return
	}
	defaultCriteria := []string{
		"Ниже ожиданий",
		"Соответствует ожиданиям",
		"Выше ожиданий",
	}
	defaultTopics := []dbmodels.EvaluationTopic{
		{Name: "Профессиональные знания", Weight: 2, OrderIndex: 1, IsActive: true},
		{Name: "Опыт работы", Weight: 1.5, OrderIndex: 2, IsActive: true},
		{Name: "Коммуникативные навыки", Weight: 1, OrderIndex: 3, IsActive: true},
		{Name: "Мотивация", Weight: 1, OrderIndex: 4, IsActive: true},
	}
	criteria := criteriastore.NewInstance(DB)
	for _, topic := range defaultTopics {
		topicID, err := topics.Create(topic)
		if err != nil {
			log.WithError(err).Error("ошибка заполнения справочника тем")
			return
		}
		for idx, name := range defaultCriteria {
			_, err = criteria.Create(dbmodels.EvaluationCriteria{
				TopicID:    topicID,
				Name:       name,
				OrderIndex: idx + 1,
				IsActive:   true,
			})
			if err != nil {
				log.WithError(err).Error("ошибка заполнения справочника критериев")
				return
			}
		}
	}
	log.Info("справочник тем заполнен стартовыми значениями")
}

func fillTestCategories() {
	store := prevteststore.NewInstance(DB)
	count, err := store.CategoryCount()
	if err != nil {
		log.WithError(err).Error("ошибка проверки справочника категорий тестов")
		return
	}
	if count > 0 {
		return
	}
	defaultCategories := []dbmodels.TestCategory{
		{Name: "Общие способности", MaxScore: 100, Type: models.ExaminationTypePreviousTest, IsActive: true},
		{Name: "Профессиональный тест", MaxScore: 100, Type: models.ExaminationTypePreviousTest, IsActive: true},
		{Name: "Английский язык", MaxScore: 100, Type: models.ExaminationTypePreviousTest, IsActive: true},
	}
	for _, category := range defaultCategories {
		if _, err = store.CreateCategory(category); err != nil {
			log.WithError(err).Error("ошибка заполнения справочника категорий тестов")
			return
		}
	}
	log.Info("справочник категорий тестов заполнен стартовыми значениями")
}
