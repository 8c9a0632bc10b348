package apiv1

import (
	"hr-eval-backend/controllers"
	reporthandler "hr-eval-backend/lib/report"
	"hr-eval-backend/middleware"
	apimodels "hr-eval-backend/models/api"
	reportapimodels "hr-eval-backend/models/api/report"

	"github.com/gofiber/fiber/v2"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("report", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("find", controller.find)
		router.Post("session/:session_id/finalize", middleware.EvaluatorRequired(), controller.finalize)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("pdf", controller.exportPDF)
		})
	})
}

// @Summary Формирование отчёта
// @Tags Отчёт
// @Description Формирование итогового отчёта по кандидату. Доступно только при полном покрытии активных тем оценками
// @Param   Authorization		header		string					true	"Authorization token"
// @Param   session_id  		path    string  				    true    "ID сессии"
// @Param	body body	 reportapimodels.FinalizeRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/session/{session_id}/finalize [post]
func (c *reportApiController) finalize(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	var payload reportapimodels.FinalizeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := reporthandler.Instance.Finalize(ctx.UserContext(), sessionID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Отчёт
// @Description Получение отчёта по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/{id} [get]
func (c *reportApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := reporthandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Поиск отчёта
// @Tags Отчёт
// @Description Поиск отчёта по сессии и кандидату
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	session_id			query 	string	true		 "ID сессии"
// @Param	candidate_id		query 	string	true		 "ID кандидата"
// @Param	evaluator_id		query 	string	false		 "ID члена комиссии"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/find [get]
func (c *reportApiController) find(ctx *fiber.Ctx) error {
	sessionID := ctx.Query("session_id")
	candidateID := ctx.Query("candidate_id")
	if sessionID == "" || candidateID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указана сессия или кандидат"))
	}

	resp, err := reporthandler.Instance.Find(sessionID, candidateID, ctx.Query("evaluator_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка поиска отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Отчёт
// @Description Список отчётов
// @Param	body body	 reportapimodels.ReportFilter	true	"request filter body"
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/list [post]
func (c *reportApiController) list(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := reporthandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка отчётов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Экспорт в PDF
// @Tags Отчёт
// @Description Скачать отчёт в формате PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/{id}/pdf [get]
func (c *reportApiController) exportPDF(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, pdfFile, err := reporthandler.Instance.ExportPDF(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка экспорта отчёта в PDF")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(pdfFile)
}
