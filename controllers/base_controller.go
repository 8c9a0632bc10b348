package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hr-eval-backend/middleware"
	"hr-eval-backend/models"
	apimodels "hr-eval-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор записи")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path()).
		WithField("user_id", middleware.GetUserID(ctx))
}

// SendError переводит класс ошибки бизнес-логики в HTTP статус.
// Ошибки без класса считаются внутренними.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, errMsg string) error {
	if kind, ok := models.GetErrorKind(err); ok {
		status := fiber.StatusBadRequest
		switch kind {
		case models.ErrKindNotFound:
			status = fiber.StatusNotFound
		case models.ErrKindForbidden:
			status = fiber.StatusForbidden
		case models.ErrKindConflict:
			status = fiber.StatusConflict
		}
		return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(errMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(errMsg))
}
