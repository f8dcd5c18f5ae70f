package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// statusFor maps upstream failure kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, util.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, util.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, util.ErrTransient):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler renders every error as an ErrorResponse with the
// status derived from its failure kind.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	message := "request failed"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = http.StatusText(code)
	}

	resp := ErrorResponse{Error: message, Details: err.Error()}
	if jsonErr := c.JSON(code, resp); jsonErr != nil {
		util.Errorf("Failed to write error response: %v", jsonErr)
	}
}
