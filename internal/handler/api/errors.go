package api

import (
	"errors"
	"net/http"

	"Jyotish/internal/domain/models"
	xhttp "Jyotish/pkg/http"

	"github.com/labstack/echo/v4"
)

// codedStatus maps core error codes to HTTP statuses. Unknown codes fall
// through to 500.
var codedStatus = map[string]int{
	models.CodeInvalidDate:        http.StatusBadRequest,
	models.CodeInvalidTime:        http.StatusBadRequest,
	models.CodeInvalidCoordinates: http.StatusBadRequest,
	models.CodeAmbiguousTimezone:  http.StatusUnprocessableEntity,
	models.CodeEphemerisRange:     http.StatusUnprocessableEntity,
	models.CodeAscendantUndefined: http.StatusUnprocessableEntity,
	models.CodeRangeTooLarge:      http.StatusRequestEntityTooLarge,
	models.CodeCancelled:          http.StatusRequestTimeout,
}

// errorResponse renders a core CodedError with its stable code, falling
// back to the shared app-error envelope otherwise.
func errorResponse(c echo.Context, err error) error {
	var coded *models.CodedError
	if errors.As(err, &coded) {
		status, ok := codedStatus[coded.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		appErr := xhttp.NewAppError(coded.Code, "", coded.Message, status)
		return xhttp.DataResponse(c, status, []*xhttp.AppError{appErr})
	}
	return xhttp.AppErrorResponse(c, err)
}
