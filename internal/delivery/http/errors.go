package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// apiError is a handler failure with a client-facing payload
type apiError struct {
	Status  int
	Message string
	Detail  interface{}
}

func newAPIError(status int, message string, detail interface{}) *apiError {
	return &apiError{Status: status, Message: message, Detail: detail}
}

func (e *apiError) Error() string {
	return e.Message
}

// customErrorHandler renders every error as {"error", "message", "detail"}.
// detail carries field errors for 422 and the cause for 500, which is what
// the front-end reads.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	var detail interface{} = message

	var apiErr *apiError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		code, message, detail = apiErr.Status, apiErr.Message, apiErr.Detail
		if detail == nil {
			detail = message
		}
	case errors.As(err, &fiberErr):
		code, message, detail = fiberErr.Code, fiberErr.Message, fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
		"detail":  detail,
	})
}
