package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type AnalyzeHandler struct {
	worker      services.Worker
	maxFileSize int64
	timeout     time.Duration
}

func NewAnalyzeHandler(
	worker services.Worker,
	maxFileSize int64,
	timeout time.Duration,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		worker:      worker,
		maxFileSize: maxFileSize,
		timeout:     timeout,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil || file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	document, err := readUpload(file, h.maxFileSize)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.worker.Submit(ctx, document, jobDescription)
	if err != nil {
		status, message := errorStatus(err)
		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}

	return c.JSON(models.AnalyzeResponse{
		ID:              uuid.New().String(),
		ApplicantName:   result.ApplicantName,
		MatchPercentage: result.MatchPercentage,
		MatchingSkills:  result.MatchingSkills.Sorted(),
		MissingSkills:   result.MissingSkills.Sorted(),
		Suggestions:     services.BuildSuggestions(result.MatchPercentage),
	})
}

// errorStatus maps pipeline errors onto HTTP status codes and user-facing messages.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnreadableDocument):
		return fiber.StatusUnprocessableEntity, "The resume could not be read. Please make sure the document is a readable PDF or DOCX and try again."
	case errors.Is(err, services.ErrModelUnavailable):
		return fiber.StatusServiceUnavailable, "Language model is unavailable"
	case errors.Is(err, services.ErrWorkerStopped):
		return fiber.StatusServiceUnavailable, "Analyzer is shutting down"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "Analysis timed out"
	default:
		return fiber.StatusInternalServerError, "Failed to analyze resume"
	}
}

func readUpload(file *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("resume file too large, max size: %d bytes", maxBytes)
	}
	return data, nil
}
