package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_guarantor/pkg/contextx"
	"tg_guarantor/pkg/middlewarex"
)

func TestLoggerAttachesContextLogger(t *testing.T) {
	rq := require.New(t)

	var sawLogger bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := contextx.LoggerFromContext(r.Context())
		sawLogger = err == nil
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	middlewarex.TraceID(middlewarex.Logger(next)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	rq.Equal(http.StatusNoContent, w.Code)
	rq.True(sawLogger)
	rq.NotEmpty(w.Header().Get("X-Trace-Id"))
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	middlewarex.Recovery(next).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	rq.Equal(http.StatusInternalServerError, w.Code)
}
