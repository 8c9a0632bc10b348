package apiv1

import (
	"hr-eval-backend/controllers"
	prevtesthandler "hr-eval-backend/lib/prevtest"
	"hr-eval-backend/middleware"
	apimodels "hr-eval-backend/models/api"
	prevtestapimodels "hr-eval-backend/models/api/prevtest"

	"github.com/gofiber/fiber/v2"
)

type prevtestApiController struct {
	controllers.BaseAPIController
}

func InitPrevtestApiRouters(app *fiber.App) {
	controller := prevtestApiController{}
	app.Route("test-category", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.ExaminerRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("", middleware.ExaminerRequired(), controller.update)
			idRoute.Delete("", middleware.ExaminerRequired(), controller.delete)
		})
	})
}

// @Summary Создание категории
// @Tags Испытания
// @Description Создание категории стандартизированного испытания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 prevtestapimodels.CategoryData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test-category [post]
func (c *prevtestApiController) create(ctx *fiber.Ctx) error {
	var payload prevtestapimodels.CategoryData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := prevtesthandler.Instance.CreateCategory(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания категории испытания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление категории
// @Tags Испытания
// @Description Обновление категории стандартизированного испытания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 prevtestapimodels.CategoryData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test-category/{id} [put]
func (c *prevtestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload prevtestapimodels.CategoryData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = prevtesthandler.Instance.UpdateCategory(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения категории испытания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление категории
// @Tags Испытания
// @Description Удаление категории стандартизированного испытания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test-category/{id} [delete]
func (c *prevtestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = prevtesthandler.Instance.DeleteCategory(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления категории испытания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список категорий
// @Tags Испытания
// @Description Список категорий стандартизированных испытаний
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	only_active			query 	bool	false		 "только активные"
// @Success 200 {object} apimodels.Response{data=[]prevtestapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test-category [get]
func (c *prevtestApiController) list(ctx *fiber.Ctx) error {
	onlyActive := ctx.QueryBool("only_active", false)
	resp, err := prevtesthandler.Instance.ListCategories(onlyActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка категорий испытаний")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
