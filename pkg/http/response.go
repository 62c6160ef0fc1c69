package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes the payload as-is with a 200.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// BadRequestResponse writes a 400 with the validation detail list.
func BadRequestResponse(c echo.Context, message string, details []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   "Invalid request",
		Message: message,
		Details: details,
	})
}

// InternalServerErrorResponse writes a 500 carrying the raw error message.
func InternalServerErrorResponse(c echo.Context, err error) error {
	body := ErrorBody{Error: "Internal server error"}
	if err != nil {
		body.Message = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// AppErrorResponse maps an AppError to its status, anything else to a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorBody{
			Error:   http.StatusText(appErr.Status),
			Message: appErr.Message,
		})
	}
	return InternalServerErrorResponse(c, err)
}
