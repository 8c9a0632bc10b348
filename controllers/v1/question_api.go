package apiv1

import (
	"hr-eval-backend/controllers"
	questionhandler "hr-eval-backend/lib/question"
	"hr-eval-backend/middleware"
	"hr-eval-backend/models"
	apimodels "hr-eval-backend/models/api"
	questionapimodels "hr-eval-backend/models/api/question"

	"github.com/gofiber/fiber/v2"
)

type questionApiController struct {
	controllers.BaseAPIController
}

func InitQuestionApiRouters(app *fiber.App) {
	controller := questionApiController{}
	app.Route("question", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.ExaminerRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("", middleware.ExaminerRequired(), controller.update)
			idRoute.Delete("", middleware.ExaminerRequired(), controller.delete)
		})
		router.Route("session/:session_id", func(sessionRoute fiber.Router) {
			sessionRoute.Put("random", middleware.EvaluatorRequired(), controller.pickRandom)
			sessionRoute.Post("answers", middleware.EvaluatorRequired(), controller.saveAnswers)
			sessionRoute.Route("candidate/:candidate_id", func(candRoute fiber.Router) {
				candRoute.Get("", controller.listEvaluations)
				candRoute.Get("my", middleware.EvaluatorRequired(), controller.getEvaluation)
			})
		})
	})
}

// @Summary Создание вопроса
// @Tags Вопросы
// @Description Создание вопроса с вариантами ответа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 questionapimodels.QuestionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question [post]
func (c *questionApiController) create(ctx *fiber.Ctx) error {
	var payload questionapimodels.QuestionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := questionhandler.Instance.CreateQuestion(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания вопроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление вопроса
// @Tags Вопросы
// @Description Обновление вопроса. Варианты ответа перезаписываются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 questionapimodels.QuestionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question/{id} [put]
func (c *questionApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload questionapimodels.QuestionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = questionhandler.Instance.UpdateQuestion(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения вопроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление вопроса
// @Tags Вопросы
// @Description Удаление вопроса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question/{id} [delete]
func (c *questionApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = questionhandler.Instance.DeleteQuestion(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вопроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список вопросов
// @Tags Вопросы
// @Description Список вопросов с вариантами ответа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	only_active			query 	bool	false		 "только активные"
// @Success 200 {object} apimodels.Response{data=[]questionapimodels.QuestionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question [get]
func (c *questionApiController) list(ctx *fiber.Ctx) error {
	onlyActive := ctx.QueryBool("only_active", false)
	resp, err := questionhandler.Instance.ListQuestions(onlyActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вопросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Случайный вопрос
// @Tags Вопросы
// @Description Выбрать случайный активный вопрос типа и назначить его текущим в сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   session_id  		path    string  				    	true         "ID сессии"
// @Param	type				query 	string	true		 "тип вопроса"
// @Success 200 {object} apimodels.Response{data=questionapimodels.QuestionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question/session/{session_id}/random [put]
func (c *questionApiController) pickRandom(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	questionType := models.QuestionType(ctx.Query("type"))

	resp, err := questionhandler.Instance.PickRandom(sessionID, questionType)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выбора случайного вопроса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сохранить ответы
// @Tags Вопросы
// @Description Сохранить лист ответов кандидата. Повторное сохранение перезаписывает лист
// @Param   Authorization		header		string					true	"Authorization token"
// @Param   session_id  		path    string  				    true    "ID сессии"
// @Param	body body	 questionapimodels.SaveAnswersRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question/session/{session_id}/answers [post]
func (c *questionApiController) saveAnswers(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	var payload questionapimodels.SaveAnswersRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := questionhandler.Instance.SaveAnswers(sessionID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения ответов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Мой лист ответов
// @Tags Вопросы
// @Description Лист ответов текущего члена комиссии по кандидату
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   session_id  		path    string  				    	true         "ID сессии"
// @Param   candidate_id		path    string  				    	true         "ID кандидата"
// @Success 200 {object} apimodels.Response{data=questionapimodels.CandidateEvaluationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question/session/{session_id}/candidate/{candidate_id}/my [get]
func (c *questionApiController) getEvaluation(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	candidateID := ctx.Params("candidate_id")
	userID := middleware.GetUserID(ctx)

	resp, err := questionhandler.Instance.GetEvaluation(sessionID, candidateID, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения листа ответов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Листы ответов кандидата
// @Tags Вопросы
// @Description Все листы ответов кандидата в сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   session_id  		path    string  				    	true         "ID сессии"
// @Param   candidate_id		path    string  				    	true         "ID кандидата"
// @Success 200 {object} apimodels.Response{data=[]questionapimodels.CandidateEvaluationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/question/session/{session_id}/candidate/{candidate_id} [get]
func (c *questionApiController) listEvaluations(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	candidateID := ctx.Params("candidate_id")

	resp, err := questionhandler.Instance.ListEvaluations(sessionID, candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения листов ответов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
