package list

import (
	"hungrylist/internal/shared/errors"
)

const (
	CodeSectionNotFound  = "SECTION_NOT_FOUND"
	CodeDuplicateSection = "DUPLICATE_SECTION"
	CodeItemNotFound     = "ITEM_NOT_FOUND"
	CodeDuplicateItem    = "DUPLICATE_ITEM"
	CodeInvalidSection   = "INVALID_SECTION"
)

func ErrSectionNotFound() *errors.AppError {
	return errors.NewNotFoundError(CodeSectionNotFound, "Section not found.")
}

func ErrDuplicateSection() *errors.AppError {
	return errors.NewConflictError(CodeDuplicateSection, "A section with this name already exists.")
}

func ErrLastSection() *errors.AppError {
	return errors.NewValidationError(errors.CodeLastSection,
		"At least one active section is required. Create another section before deleting this one.")
}

func ErrItemNotFound() *errors.AppError {
	return errors.NewNotFoundError(CodeItemNotFound, "Item not found.")
}

func ErrDuplicateItem() *errors.AppError {
	return errors.NewConflictError(CodeDuplicateItem, "This item already exists in the selected section.")
}

func ErrInvalidSection() *errors.AppError {
	return errors.NewValidationError(CodeInvalidSection, "Please select a valid active section.")
}
