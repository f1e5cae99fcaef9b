package middleware

import (
	"net/http"

	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
	jsonres "learnDesk/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the central mapping from typed business errors to
// HTTP responses. Internal errors are logged with their cause but only
// a generic message leaves the server.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, jsonres.Error(codeFor(he.Code), msg, nil))
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL"
	message := "something went wrong"

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
	case apperr.KindConflict:
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	case apperr.KindValidation:
		status, code, message = http.StatusBadRequest, "VALIDATION", err.Error()
	case apperr.KindUnauthorized:
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case apperr.KindUpstream:
		status, code, message = http.StatusBadGateway, "UPSTREAM", err.Error()
	default:
		logger.Error("Unhandled error", err)
	}

	_ = c.JSON(status, jsonres.Error(code, message, nil))
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusBadRequest:
		return "VALIDATION"
	}
	return "INTERNAL"
}
