package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	appbackup "hungrylist/internal/application/backup"
	"hungrylist/internal/domain/backup"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/utils"
)

type backupArchiver interface {
	Create(ctx context.Context, reason backup.Reason) (*backup.Record, error)
	List(ctx context.Context) ([]*backup.Record, error)
	Delete(ctx context.Context, id string) error
}

type backupRestorer interface {
	Restore(ctx context.Context, id string, opts appbackup.RestoreOptions) (*appbackup.RestoreResult, error)
}

type BackupHandler struct {
	archiver backupArchiver
	restorer backupRestorer
	logger   logger.Interface
}

func NewBackupHandler(archiver backupArchiver, restorer backupRestorer, logger logger.Interface) *BackupHandler {
	return &BackupHandler{archiver: archiver, restorer: restorer, logger: logger}
}

// BackupResponse keeps the snake_case created_at the frontend reads.
type BackupResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func toBackupResponse(r *backup.Record) *BackupResponse {
	return &BackupResponse{
		ID:        r.ID,
		Filename:  r.Filename,
		Reason:    string(r.Reason),
		CreatedAt: r.CreatedAt,
	}
}

type RestoreRequest struct {
	CreateCurrentBackup bool `json:"createCurrentBackup"`
}

// List handles GET /api/backups
func (h *BackupHandler) List(c *gin.Context) {
	records, err := h.archiver.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]*BackupResponse, len(records))
	for i, r := range records {
		out[i] = toBackupResponse(r)
	}
	utils.OK(c, out)
}

// Create handles POST /api/backups
func (h *BackupHandler) Create(c *gin.Context) {
	record, err := h.archiver.Create(c.Request.Context(), backup.ReasonManual)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toBackupResponse(record))
}

// Restore handles POST /api/backups/:id/restore. The body is optional.
func (h *BackupHandler) Restore(c *gin.Context) {
	var req RestoreRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	id := idParam(c)
	result, err := h.restorer.Restore(c.Request.Context(), id, appbackup.RestoreOptions{
		CreateCurrentBackup: req.CreateCurrentBackup,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("backup restored", "backup_id", id, "safety_backup_id", result.CreatedSafetyBackupID)
	utils.OK(c, result)
}

// Delete handles DELETE /api/backups/:id
func (h *BackupHandler) Delete(c *gin.Context) {
	if err := h.archiver.Delete(c.Request.Context(), idParam(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
