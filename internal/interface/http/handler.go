package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seraface/seraface-server/internal/domain/analysis"
	"github.com/seraface/seraface-server/internal/domain/intake"
	"github.com/seraface/seraface-server/internal/domain/pipeline"
	"github.com/seraface/seraface-server/internal/domain/profile"
	"github.com/seraface/seraface-server/internal/domain/routine"
	apperrors "github.com/seraface/seraface-server/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	intakeSvc   intake.Service
	analysisSvc analysis.Service
	routineSvc  routine.Service
	pipelineSvc pipeline.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(intakeSvc intake.Service, analysisSvc analysis.Service, routineSvc routine.Service, pipelineSvc pipeline.Service, logger *slog.Logger) *Handler {
	return &Handler{
		intakeSvc:   intakeSvc,
		analysisSvc: analysisSvc,
		routineSvc:  routineSvc,
		pipelineSvc: pipelineSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// SubmitForm accepts the skincare intake form and opens a pipeline session.
func (h *Handler) SubmitForm(c *gin.Context) {
	var form profile.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.intakeSvc.Submit(c.Request.Context(), form)
	if err != nil {
		status := http.StatusInternalServerError
		code := "form_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListForms returns the forms received since startup.
func (h *Handler) ListForms(c *gin.Context) {
	forms := h.intakeSvc.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"forms": forms, "count": len(forms)})
}

// AnalyzeFace runs the facial image analysis for a session.
func (h *Handler) AnalyzeFace(c *gin.Context) {
	sessionID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file is required", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read uploaded file", err))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read uploaded file", err))
		return
	}

	resp, err := h.analysisSvc.AnalyzeFace(c.Request.Context(), sessionID, fileHeader.Header.Get("Content-Type"), image)
	if err != nil {
		status := http.StatusInternalServerError
		code := "analysis_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "not_found"):
			status = http.StatusNotFound
			code = "session_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateRoutine generates a personalized skincare routine.
func (h *Handler) CreateRoutine(c *gin.Context) {
	var req routine.CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.routineSvc.CreateRoutine(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "routine_failed"
		message := "Failed to create skincare routine"
		switch {
		case apperrors.IsCode(err, "invalid_input"), apperrors.IsCode(err, "missing_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
			message = errMessage(err)
		case apperrors.IsCode(err, "not_found"):
			status = http.StatusNotFound
			code = "session_not_found"
			message = errMessage(err)
		}
		abortWithError(c, NewHTTPError(status, code, message, err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// SessionStatus reports pipeline progress for a session.
func (h *Handler) SessionStatus(c *gin.Context) {
	report, err := h.pipelineSvc.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		code := "status_failed"
		if apperrors.IsCode(err, "not_found") {
			status = http.StatusNotFound
			code = "session_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, report)
}

// Health answers liveness probes.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
