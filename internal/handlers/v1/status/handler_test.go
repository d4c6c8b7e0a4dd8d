package status

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finexa/finexa-server/internal/logging"
)

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging()
	return logging.NewLogData(logger)
}

func TestStatusHandler_Get(t *testing.T) {
	statusHandler := NewHandler()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)
	assert.Equal(t, 200, w.Result().StatusCode)
}

func TestStatusHandler_RejectsOtherMethods(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		statusHandler := NewHandler()
		req := httptest.NewRequest(method, "/status", nil)
		w := httptest.NewRecorder()

		err := statusHandler.Handler(w, req, createTestLogData())
		assert.Error(t, err)
		assert.Equal(t, 400, w.Result().StatusCode)
	}
}
