package backup

import (
	"hungrylist/internal/shared/errors"
)

const (
	CodeNotFound       = "BACKUP_NOT_FOUND"
	CodeFileMissing    = "BACKUP_FILE_MISSING"
	CodeInvalidFile    = "INVALID_BACKUP_FILE"
	CodeInvalidContent = "INVALID_BACKUP_CONTENT"
	CodeDeleteFailed   = "BACKUP_DELETE_FAILED"
	CodeWriteFailed    = "BACKUP_WRITE_FAILED"
)

func ErrNotFound() *errors.AppError {
	return errors.NewNotFoundError(CodeNotFound, "Backup not found.")
}

func ErrFileMissing() *errors.AppError {
	return errors.NewNotFoundError(CodeFileMissing, "Backup file is missing on disk.")
}

func ErrInvalidFile() *errors.AppError {
	return errors.NewIntegrityError(CodeInvalidFile, "Selected backup file is invalid.")
}

func ErrInvalidContent() *errors.AppError {
	return errors.NewIntegrityError(CodeInvalidContent, "Backup restore failed because it has no active sections.")
}

func ErrDeleteFailed() *errors.AppError {
	return errors.NewIOError(CodeDeleteFailed, "Failed to delete backup file from disk.")
}

func ErrWriteFailed() *errors.AppError {
	return errors.NewIOError(CodeWriteFailed, "Failed to write backup file to disk.")
}
