package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Error kinds surfaced to callers so the UI can pick an appropriate
// message. Every error response carries exactly one of these.
const (
	KindValidation      = "validation"
	KindNotFound        = "not_found"
	KindUnauthorized    = "unauthorized"
	KindForbidden       = "forbidden"
	KindConflict        = "conflict"
	KindExternalService = "external_service"
)

// ✅ Success response without custom code (default 200)
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// ✅ Success response with custom code (e.g. 201 for created)
func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// ✅ Simple error response
func Error(c *fiber.Ctx, code int, message string) error {
	return ErrorWithKind(c, code, kindForStatus(code), message)
}

// ✅ Error response with an explicit kind
func ErrorWithKind(c *fiber.Ctx, code int, kind, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":       code,
		"status":     "error",
		"error_kind": kind,
		"message":    message,
	})
}

// ✅ Error response with multiple field errors
func ErrorWithDetails(c *fiber.Ctx, code int, message string, errors interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":       code,
		"status":     "error",
		"error_kind": kindForStatus(code),
		"message":    message,
		"errors":     errors,
	})
}

// ✅ For validator.v10 errors specifically
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", errorsMap)
}

func kindForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return KindValidation
	case fiber.StatusNotFound:
		return KindNotFound
	case fiber.StatusUnauthorized:
		return KindUnauthorized
	case fiber.StatusForbidden:
		return KindForbidden
	case fiber.StatusConflict:
		return KindConflict
	case fiber.StatusBadGateway, fiber.StatusServiceUnavailable:
		return KindExternalService
	default:
		return "internal"
	}
}
