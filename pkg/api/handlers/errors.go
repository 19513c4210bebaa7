package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/dirigera/pkg/api/types"
	"github.com/urmzd/dirigera/pkg/device"
)

// writeError maps err to a status code and error body.
func writeError(c *gin.Context, err error) {
	code := device.ErrorCode(err)
	c.JSON(statusFor(code), types.ErrorResponse{Error: code, Message: err.Error()})
}

func statusFor(code string) int {
	switch code {
	case device.CodeNotFound:
		return http.StatusNotFound
	case device.CodeValidation:
		return http.StatusBadRequest
	case device.CodeCapabilityUnsupported, device.CodeTypeMismatch:
		return http.StatusConflict
	case device.CodeTimeout:
		return http.StatusGatewayTimeout
	case device.CodeMalformedRecord, device.CodeHubError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// partial splits the joined error of a list scan into one message per
// skipped record.
func partial(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		out := make([]string, 0, len(errs))
		for _, e := range errs {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
