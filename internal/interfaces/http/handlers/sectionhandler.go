package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/application/list/dto"
	"hungrylist/internal/domain/list"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/utils"
)

type sectionService interface {
	List(ctx context.Context, includeDeleted bool) ([]*list.Section, error)
	Create(ctx context.Context, in list.SectionInput) (*list.Section, bool, error)
	Update(ctx context.Context, sectionID string, in list.SectionInput) (*list.Section, error)
	Delete(ctx context.Context, sectionID string) error
}

type SectionHandler struct {
	service sectionService
	logger  logger.Interface
}

func NewSectionHandler(service sectionService, logger logger.Interface) *SectionHandler {
	return &SectionHandler{service: service, logger: logger}
}

type SectionRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Icon  string `json:"icon" validate:"required,min=1,max=10"`
	Color string `json:"color" validate:"required,color6"`
}

func (r *SectionRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Icon = strings.TrimSpace(r.Icon)
	r.Color = strings.TrimSpace(r.Color)
}

func (r *SectionRequest) input() list.SectionInput {
	return list.SectionInput{Name: r.Name, Icon: r.Icon, Color: r.Color}
}

type listSectionsQuery struct {
	IncludeDeleted string `form:"includeDeleted" validate:"omitempty,oneof=true false"`
}

// bindSection trims before validating so that "   " counts as empty.
func bindSection(c *gin.Context) (*SectionRequest, error) {
	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.NewBindError(err)
	}
	req.normalize()
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// List handles GET /api/sections
func (h *SectionHandler) List(c *gin.Context) {
	var query listSectionsQuery
	if err := bindQuery(c, &query); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sections, err := h.service.List(c.Request.Context(), query.IncludeDeleted == "true")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, dto.ToSectionDTOs(sections))
}

// Create handles POST /api/sections. Reviving a deleted section answers 200
// with restored=true instead of 201.
func (h *SectionHandler) Create(c *gin.Context) {
	req, err := bindSection(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	section, restored, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	status := http.StatusCreated
	if restored {
		status = http.StatusOK
	}
	c.JSON(status, restorableResponse{Data: dto.ToSectionDTO(section), Restored: restored})
}

// Update handles PUT /api/sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	req, err := bindSection(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	section, err := h.service.Update(c.Request.Context(), idParam(c), req.input())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, dto.ToSectionDTO(section))
}

// Delete handles DELETE /api/sections/:id
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), idParam(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// restorableResponse is the create body of entities that can be revived
// from a tombstone.
type restorableResponse struct {
	Data     any  `json:"data"`
	Restored bool `json:"restored"`
}
