package apiv1

import (
	"hr-eval-backend/controllers"
	evaluationhandler "hr-eval-backend/lib/evaluation"
	"hr-eval-backend/middleware"
	apimodels "hr-eval-backend/models/api"
	evaluationapimodels "hr-eval-backend/models/api/evaluation"

	"github.com/gofiber/fiber/v2"
)

type evaluationApiController struct {
	controllers.BaseAPIController
}

func InitEvaluationApiRouters(app *fiber.App) {
	controller := evaluationApiController{}
	app.Route("evaluation", func(router fiber.Router) {
		router.Route("topic", func(topicRoute fiber.Router) {
			topicRoute.Get("", controller.listTopics)
			topicRoute.Post("", middleware.ExaminerRequired(), controller.createTopic)
			topicRoute.Route(":id", func(idRoute fiber.Router) {
				idRoute.Put("", middleware.ExaminerRequired(), controller.updateTopic)
				idRoute.Delete("", middleware.ExaminerRequired(), controller.deleteTopic)
				idRoute.Post("criteria", middleware.ExaminerRequired(), controller.createCriteria)
			})
		})
		router.Route("criteria/:id", func(idRoute fiber.Router) {
			idRoute.Put("", middleware.ExaminerRequired(), controller.updateCriteria)
			idRoute.Delete("", middleware.ExaminerRequired(), controller.deleteCriteria)
		})
		router.Route("session/:session_id", func(sessionRoute fiber.Router) {
			sessionRoute.Post("", middleware.EvaluatorRequired(), controller.save)
			sessionRoute.Route("candidate/:candidate_id", func(candRoute fiber.Router) {
				candRoute.Get("", controller.listByCandidate)
				candRoute.Get("my", middleware.EvaluatorRequired(), controller.listMine)
				candRoute.Get("summary", controller.summary)
			})
		})
	})
}

// @Summary Создание темы
// @Tags Оценивание
// @Description Создание темы оценивания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 evaluationapimodels.TopicData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/topic [post]
func (c *evaluationApiController) createTopic(ctx *fiber.Ctx) error {
	var payload evaluationapimodels.TopicData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := evaluationhandler.Instance.CreateTopic(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление темы
// @Tags Оценивание
// @Description Обновление темы оценивания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 evaluationapimodels.TopicData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/topic/{id} [put]
func (c *evaluationApiController) updateTopic(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload evaluationapimodels.TopicData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = evaluationhandler.Instance.UpdateTopic(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление темы
// @Tags Оценивание
// @Description Удаление темы оценивания вместе с критериями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/topic/{id} [delete]
func (c *evaluationApiController) deleteTopic(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = evaluationhandler.Instance.DeleteTopic(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления темы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список тем
// @Tags Оценивание
// @Description Список тем оценивания с критериями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	only_active			query 	bool	false		 "только активные"
// @Success 200 {object} apimodels.Response{data=[]evaluationapimodels.TopicView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/topic [get]
func (c *evaluationApiController) listTopics(ctx *fiber.Ctx) error {
	onlyActive := ctx.QueryBool("only_active", false)
	resp, err := evaluationhandler.Instance.ListTopics(onlyActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка тем")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание критерия
// @Tags Оценивание
// @Description Создание критерия темы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ID темы"
// @Param	body body	 evaluationapimodels.CriteriaData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/topic/{id}/criteria [post]
func (c *evaluationApiController) createCriteria(ctx *fiber.Ctx) error {
	topicID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload evaluationapimodels.CriteriaData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := evaluationhandler.Instance.CreateCriteria(topicID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания критерия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление критерия
// @Tags Оценивание
// @Description Обновление критерия темы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 evaluationapimodels.CriteriaData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/criteria/{id} [put]
func (c *evaluationApiController) updateCriteria(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload evaluationapimodels.CriteriaData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = evaluationhandler.Instance.UpdateCriteria(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения критерия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление критерия
// @Tags Оценивание
// @Description Удаление критерия темы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/criteria/{id} [delete]
func (c *evaluationApiController) deleteCriteria(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = evaluationhandler.Instance.DeleteCriteria(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления критерия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сохранить оценку
// @Tags Оценивание
// @Description Сохранить оценку кандидата по теме. Повторная оценка перезаписывает предыдущую
// @Param   Authorization		header		string					true	"Authorization token"
// @Param   session_id  		path    string  				    true    "ID сессии"
// @Param	body body	 evaluationapimodels.SaveEvaluationRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/session/{session_id} [post]
func (c *evaluationApiController) save(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	var payload evaluationapimodels.SaveEvaluationRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := evaluationhandler.Instance.SaveEvaluation(sessionID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Оценки кандидата
// @Tags Оценивание
// @Description Все оценки кандидата в сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   session_id  		path    string  				    	true         "ID сессии"
// @Param   candidate_id		path    string  				    	true         "ID кандидата"
// @Success 200 {object} apimodels.Response{data=[]evaluationapimodels.EvaluationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/session/{session_id}/candidate/{candidate_id} [get]
func (c *evaluationApiController) listByCandidate(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	candidateID := ctx.Params("candidate_id")

	resp, err := evaluationhandler.Instance.ListByCandidate(sessionID, candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценок кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои оценки
// @Tags Оценивание
// @Description Оценки текущего члена комиссии по кандидату
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   session_id  		path    string  				    	true         "ID сессии"
// @Param   candidate_id		path    string  				    	true         "ID кандидата"
// @Success 200 {object} apimodels.Response{data=[]evaluationapimodels.EvaluationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/session/{session_id}/candidate/{candidate_id}/my [get]
func (c *evaluationApiController) listMine(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	candidateID := ctx.Params("candidate_id")
	userID := middleware.GetUserID(ctx)

	resp, err := evaluationhandler.Instance.ListMine(sessionID, candidateID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сводка по кандидату
// @Tags Оценивание
// @Description Агрегированная сводка оценок кандидата по темам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   session_id  		path    string  				    	true         "ID сессии"
// @Param   candidate_id		path    string  				    	true         "ID кандидата"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.SummaryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/evaluation/session/{session_id}/candidate/{candidate_id}/summary [get]
func (c *evaluationApiController) summary(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	candidateID := ctx.Params("candidate_id")

	resp, err := evaluationhandler.Instance.Summary(sessionID, candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сводки по кандидату")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
