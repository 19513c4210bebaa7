package device_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/urmzd/dirigera/pkg/device"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("device %q: %w", "x", device.ErrNotFound), device.CodeNotFound},
		{device.ErrMissingPrecondition, device.CodeValidation},
		{device.ErrCapabilityUnsupported, device.CodeCapabilityUnsupported},
		{fmt.Errorf("light-1: %w", device.ErrTypeMismatch), device.CodeTypeMismatch},
		{fmt.Errorf("get: %w", context.DeadlineExceeded), device.CodeTimeout},
		{device.ErrMalformedRecord, device.CodeMalformedRecord},
		{&device.HTTPError{Method: http.MethodGet, Path: "/devices", StatusCode: http.StatusBadGateway}, device.CodeHubError},
		{errors.New("boom"), device.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, device.ErrorCode(tt.err))
		})
	}
}
