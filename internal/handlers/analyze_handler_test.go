package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type fakeWorker struct {
	result   *models.AnalysisResult
	err      error
	document []byte
	job      string
}

func (f *fakeWorker) Start(context.Context) {}

func (f *fakeWorker) Stop() {}

func (f *fakeWorker) Submit(_ context.Context, document []byte, jobDescription string) (*models.AnalysisResult, error) {
	f.document = document
	f.job = jobDescription
	return f.result, f.err
}

type fakeChecker struct {
	err error
}

func (f fakeChecker) Name() string { return "annotator" }

func (f fakeChecker) Check(context.Context) error { return f.err }

func newTestApp(worker services.Worker, maxFileSize int64, checkers ...Checker) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app,
		NewAnalyzeHandler(worker, maxFileSize, time.Second),
		NewHealthHandler(checkers...),
	)
	return app
}

func analyzeRequest(t *testing.T, resume []byte, jobDescription string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if jobDescription != "" {
		require.NoError(t, mw.WriteField("job_description", jobDescription))
	}
	if resume != nil {
		fw, err := mw.CreateFormFile("resume", "resume.pdf")
		require.NoError(t, err)
		_, err = fw.Write(resume)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	worker := &fakeWorker{result: &models.AnalysisResult{
		MatchPercentage: 40,
		MatchingSkills:  models.NewSkillSet("python", "developer"),
		MissingSkills:   models.NewSkillSet("java"),
		ApplicantName:   "Jane Doe",
	}}
	app := newTestApp(worker, 1024)

	resp, err := app.Test(analyzeRequest(t, []byte("%PDF-1.4 resume"), "  Looking for Python and Java developer "))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.AnalyzeResponse
	decodeBody(t, resp, &body)

	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "Jane Doe", body.ApplicantName)
	assert.Equal(t, 40.0, body.MatchPercentage)
	assert.Equal(t, []string{"developer", "python"}, body.MatchingSkills)
	assert.Equal(t, []string{"java"}, body.MissingSkills)
	assert.NotEmpty(t, body.Suggestions.Improvements)
	assert.NotEmpty(t, body.Suggestions.Resources)

	assert.Equal(t, []byte("%PDF-1.4 resume"), worker.document)
	assert.Equal(t, "Looking for Python and Java developer", worker.job)
}

func TestHandleAnalyzeBadRequest(t *testing.T) {
	tests := []struct {
		name   string
		resume []byte
		job    string
	}{
		{"missing job description", []byte("%PDF-"), ""},
		{"blank job description", []byte("%PDF-"), "   "},
		{"missing resume", nil, "Go developer"},
		{"resume too large", bytes.Repeat([]byte("a"), 2048), "Go developer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := &fakeWorker{}
			app := newTestApp(worker, 1024)

			resp, err := app.Test(analyzeRequest(t, tt.resume, tt.job))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.NotEmpty(t, body["error"])
			assert.Nil(t, worker.document, "worker must not be called")
		})
	}
}

func TestHandleAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unreadable", services.ErrUnreadableDocument, fiber.StatusUnprocessableEntity},
		{"model", services.ErrModelUnavailable, fiber.StatusServiceUnavailable},
		{"stopped", services.ErrWorkerStopped, fiber.StatusServiceUnavailable},
		{"timeout", context.DeadlineExceeded, fiber.StatusGatewayTimeout},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeWorker{err: tt.err}, 1024)

			resp, err := app.Test(analyzeRequest(t, []byte("garbage"), "Go developer"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHealthAndReady(t *testing.T) {
	app := newTestApp(&fakeWorker{}, 1024, fakeChecker{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ready", body["status"])
}

func TestReadyReportsFailingComponent(t *testing.T) {
	app := newTestApp(&fakeWorker{}, 1024, fakeChecker{err: services.ErrModelUnavailable})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "annotator", body["component"])
}
