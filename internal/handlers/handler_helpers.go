package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/middleware"
	"github.com/SscSPs/ledger_recon_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// statusForError maps a service error onto an HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondWithError writes the error body for a failed service call. Internal errors are
// logged and replaced by fallback so driver details never reach the client.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: fallback})
		return
	}

	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.ErrorResponse{Error: msg})
}

// respondWithBindError reports a malformed request body or query string.
func respondWithBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	fields := utils.ProcessValidationErrors(err)
	if fields != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed: " + utils.DescribeValidationErrors(fields), Fields: fields})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// sessionFromContext returns the authenticated session or writes 401.
func sessionFromContext(c *gin.Context) (domain.SessionContext, bool) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok || session.UserID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return domain.SessionContext{}, false
	}
	return session, true
}

// maxUploadBytes caps spreadsheet uploads.
const maxUploadBytes = 10 << 20

// formFile opens the multipart "file" field or writes 400.
func formFile(c *gin.Context) (multipart.File, string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Upload missing file field", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "A spreadsheet must be uploaded in the 'file' field"})
		return nil, "", false
	}
	file, err := header.Open()
	if err != nil {
		respondWithError(c, err, "Failed to read uploaded file")
		return nil, "", false
	}
	return file, header.Filename, true
}
