package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	t.Run("matches wrapped code", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeInvalidInput, "bad address"))
		assert.True(t, Is(err, CodeInvalidInput))
		assert.False(t, Is(err, CodeInternal))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})

	t.Run("unwrap exposes cause", func(t *testing.T) {
		cause := errors.New("dial tcp: refused")
		err := Wrap(cause, CodeUpstreamUnavailable, "all sources failed")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "upstream_unavailable")
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:          http.StatusBadRequest,
		CodeInvalidInput:        http.StatusBadRequest,
		CodeChainNotRegistered:  http.StatusBadRequest,
		CodeNotFound:            http.StatusNotFound,
		CodeTimeout:             http.StatusGatewayTimeout,
		CodeUpstreamUnavailable: http.StatusBadGateway,
		CodeInternal:            http.StatusInternalServerError,
		Code("unknown"):         http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}
