package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameplate/pkg/requestcontext"
)

func serve(t *testing.T, inbound string) (ctxID, headerID string) {
	t.Helper()
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestcontext.RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/v1/chains", nil)
	if inbound != "" {
		req.Header.Set(Header, inbound)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(Header)
}

func TestMiddleware(t *testing.T) {
	t.Run("generates an id when none is supplied", func(t *testing.T) {
		ctxID, headerID := serve(t, "")
		require.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, headerID)
		_, err := uuid.Parse(ctxID)
		assert.NoError(t, err)
	})

	t.Run("propagates a caller supplied id", func(t *testing.T) {
		ctxID, headerID := serve(t, "trace-abc")
		assert.Equal(t, "trace-abc", ctxID)
		assert.Equal(t, "trace-abc", headerID)
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		ctxID, _ := serve(t, strings.Repeat("x", maxInboundLength+1))
		_, err := uuid.Parse(ctxID)
		assert.NoError(t, err)
	})
}
