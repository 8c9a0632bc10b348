package userstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-eval-backend/models"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AppUser) (userID string, err error)
	GetByID(userID string) (*dbmodels.AppUser, error)
	FindByEmail(email string) (*dbmodels.AppUser, error)
	Update(userID string, updMap map[string]interface{}) error
	List() ([]dbmodels.AppUser, error)
	ListEvaluators() ([]dbmodels.AppUser, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AppUser) (userID string, err error) {
	if rec.Email == "" {
		return "", errors.New("email не указан")
	}
	r, err := i.FindByEmail(rec.Email)
	if err != nil {
		return "", err
	}
	if r != nil {
		return "", errors.New("пользователь уже существует")
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(userID string) (*dbmodels.AppUser, error) {
	rec := dbmodels.AppUser{}
	err := i.db.
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByEmail(email string) (*dbmodels.AppUser, error) {
	rec := dbmodels.AppUser{}
	err := i.db.
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	email, ok := updMap["Email"]
	if ok {
		existedRec, err := i.FindByEmail(email.(string))
		if err != nil {
			return err
		}
		if existedRec != nil && existedRec.ID != userID {
			return errors.New("пользователь с указанным email уже существует")
		}
	}
	err := i.db.
		Model(&dbmodels.AppUser{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() ([]dbmodels.AppUser, error) {
	list := []dbmodels.AppUser{}
	err := i.db.
		Order("last_name, first_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListEvaluators() ([]dbmodels.AppUser, error) {
	list := []dbmodels.AppUser{}
	err := i.db.
		Where("is_active = ?", true).
		Where("role IN ?", []models.UserRole{models.UserRoleExaminer, models.UserRoleEvaluator}).
		Order("last_name, first_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
