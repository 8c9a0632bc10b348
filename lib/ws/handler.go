package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	wsclient "hr-eval-backend/lib/ws/client"
	sessionhub "hr-eval-backend/lib/ws/hub/session-hub"
	"hr-eval-backend/middleware"
)

func InitWs(app fiber.Router) {
	app.Use("/session/:session_id", func(ctx *fiber.Ctx) error {
		ctx.Locals("userID", middleware.GetUserID(ctx))
		ctx.Locals("userName", middleware.GetUserName(ctx))
		ctx.Locals("sessionID", ctx.Params("session_id"))
		return ctx.Next()
	})
	app.Get("/session/:session_id", websocket.New(sessionRoomHandler))
}

// @Summary Комната сессии
// @Tags Websocket Комната сессии
// @Description Трансляция смены текущего кандидата участникам сессии
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   session_id			path		string		true		"ИД сессии"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws/session/{session_id} [get]
func sessionRoomHandler(c *websocket.Conn) {
	sessionID := c.Locals("sessionID").(string)
	userID := c.Locals("userID").(string)
	userName := c.Locals("userName").(string)

	client := wsclient.NewClient(sessionID, userID, userName, c)
	sessionhub.Instance.AddClient(sessionID, userID, c)
	defer func() {
		sessionhub.Instance.DeleteClient(sessionID, userID)
	}()
	client.Dispatch()
}
