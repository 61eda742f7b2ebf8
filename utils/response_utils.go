package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// FormatValidationErrors formats validation errors from validator/v10 into
// one user-facing message.
func FormatValidationErrors(err error) string {
	var messages []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			element := fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
			if e.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, e.Param())
			}
			messages = append(messages, element)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

// SanitizeInput trims surrounding whitespace from user-supplied strings.
func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
