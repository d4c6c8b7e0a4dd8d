package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := SetupLogging()
	logger.Out = &buf
	return logger, &buf
}

func TestRequestLogger_AttachesLogData(t *testing.T) {
	logger, _ := newBufferedLogger()

	var seen *LogData
	inner := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		seen = GetLogData(req.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/transaction/list", nil)
	RequestLogger(logger, inner).ServeHTTP(rec, req)

	assert.NotNil(t, seen)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLogger_EmitsSummaryLine(t *testing.T) {
	logger, buf := newBufferedLogger()

	inner := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logData := GetLogData(req.Context())
		stopTimer := logData.AddTiming("listTransactionsMs")
		stopTimer()
		logData.AddData("transactionCount", 3)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/transaction/list", nil)
	RequestLogger(logger, inner).ServeHTTP(rec, req)

	var line map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Handler.Complete", line["msg"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/v1/transaction/list", line["path"])
	assert.Equal(t, float64(3), line["transactionCount"])
	assert.Contains(t, line, "duration")
	assert.Contains(t, line, "listTransactionsMs")
	assert.Equal(t, "finexa-server", line["service"])
}
