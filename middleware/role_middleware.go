package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "hr-eval-backend/lib/utils/auth-utils"
	"hr-eval-backend/models"
	apimodels "hr-eval-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, exist := claims["name"]; exist {
		if stringName, ok := name.(string); ok {
			return stringName
		}
	}
	return ""
}

func SuperAdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.UserRoleSuperAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

// ExaminerRequired пропускает председателя комиссии и суперадмина.
func ExaminerRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsExaminer() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция доступна только председателю комиссии"))
		}
		return ctx.Next()
	}
}

// EvaluatorRequired пропускает любого участника комиссии.
func EvaluatorRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).CanEvaluate() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция доступна только членам комиссии"))
		}
		return ctx.Next()
	}
}
