package authhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hr-eval-backend/db"
	userstore "hr-eval-backend/lib/auth/store"
	authutils "hr-eval-backend/lib/utils/auth-utils"
	"hr-eval-backend/models"
	authapimodels "hr-eval-backend/models/api/auth"
	dbmodels "hr-eval-backend/models/db"
)

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, err error)
	Refresh(refreshToken string) (response authapimodels.JWTResponse, err error)
	GetMe(userID string) (authapimodels.MeResponse, error)
	ListEvaluators() ([]authapimodels.MeResponse, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: userstore.NewInstance(db.DB),
	}
}

type impl struct {
	store userstore.Provider
}

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return authapimodels.JWTResponse{}, errors.New("пользователь с такой почтой не найден")
	}
	if !user.IsActive {
		logger.Debug("пользователь заблокирован")
		return authapimodels.JWTResponse{}, errors.New("пользователь заблокирован")
	}
	if authutils.GetMD5Hash(password) != user.Password {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, errors.New("пользователь не прошел проверку пароля")
	}
	tokenString, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	refreshString, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		logger.WithError(err).Error("ошибка генерации refresh JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"LastLogin": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return authapimodels.JWTResponse{
		Token:        tokenString,
		RefreshToken: refreshString,
	}, nil
}

func (i impl) Refresh(refreshToken string) (response authapimodels.JWTResponse, err error) {
	claims, err := authutils.ParseToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.New("refresh token не прошел проверку")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return authapimodels.JWTResponse{}, errors.New("refresh token не прошел проверку")
	}
	user, err := i.store.GetByID(sub)
	if err != nil {
		log.WithError(err).Error("ошибка поиска пользователя по токену")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, errors.New("пользователь не найден или заблокирован")
	}
	tokenString, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refreshString, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        tokenString,
		RefreshToken: refreshString,
	}, nil
}

func (i impl) GetMe(userID string) (authapimodels.MeResponse, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка получения пользователя")
		return authapimodels.MeResponse{}, err
	}
	if user == nil {
		return authapimodels.MeResponse{}, models.NotFoundError("пользователь не найден")
	}
	return userConvert(*user), nil
}

func (i impl) ListEvaluators() ([]authapimodels.MeResponse, error) {
	list, err := i.store.ListEvaluators()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка членов комиссии")
		return nil, err
	}
	result := make([]authapimodels.MeResponse, 0, len(list))
	for _, user := range list {
		result = append(result, userConvert(user))
	}
	return result, nil
}

func userConvert(user dbmodels.AppUser) authapimodels.MeResponse {
	return authapimodels.MeResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.GetFullName(),
		Role:      string(user.Role),
		RoleName:  user.Role.ToHuman(),
	}
}
