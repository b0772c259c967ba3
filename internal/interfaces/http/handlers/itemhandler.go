package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	applist "hungrylist/internal/application/list"
	"hungrylist/internal/application/list/dto"
	"hungrylist/internal/domain/list"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/utils"
)

type itemService interface {
	List(ctx context.Context, filter list.ItemFilter) ([]*dto.ItemDTO, error)
	Get(ctx context.Context, itemID string) (*dto.ItemDTO, error)
	Create(ctx context.Context, in list.ItemInput) (*dto.ItemDTO, bool, error)
	Update(ctx context.Context, itemID string, in list.ItemInput) (*dto.ItemDTO, error)
	Delete(ctx context.Context, itemID string) error
	ToggleChecked(ctx context.Context, itemID string, explicit *bool) (*dto.ItemDTO, error)
	ToggleFavorite(ctx context.Context, itemID string) (*dto.ItemDTO, error)
	ToggleRunningLow(ctx context.Context, itemID string) (*dto.ItemDTO, error)
}

type ItemHandler struct {
	service itemService
	logger  logger.Interface
}

func NewItemHandler(service itemService, logger logger.Interface) *ItemHandler {
	return &ItemHandler{service: service, logger: logger}
}

type ItemRequest struct {
	SectionID       string `json:"sectionId" validate:"required"`
	Name            string `json:"name" validate:"required,min=1,max=120"`
	Description     string `json:"description" validate:"max=500"`
	Priority        string `json:"priority" validate:"omitempty,oneof=must soon optional"`
	RemindEveryDays int    `json:"remindEveryDays" validate:"min=0,max=365"`
}

func (r *ItemRequest) input() list.ItemInput {
	return list.ItemInput{
		SectionID:       r.SectionID,
		Name:            r.Name,
		Description:     r.Description,
		Priority:        list.Priority(r.Priority),
		RemindEveryDays: r.RemindEveryDays,
	}
}

type ListItemsQuery struct {
	SectionID      string `form:"sectionId"`
	Search         string `form:"search"`
	Checked        string `form:"checked" validate:"omitempty,oneof=all checked unchecked"`
	Priority       string `form:"priority" validate:"omitempty,oneof=must soon optional"`
	Sort           string `form:"sort" validate:"omitempty,oneof=updated_desc name_asc priority created_desc"`
	FavoritesOnly  string `form:"favoritesOnly" validate:"omitempty,oneof=true false"`
	RunningLowOnly string `form:"runningLowOnly" validate:"omitempty,oneof=true false"`
	View           string `form:"view" validate:"omitempty,oneof=myList nextTrip favorites runningLow reminders"`
}

func (q *ListItemsQuery) filter() list.ItemFilter {
	filter := list.ItemFilter{
		SectionID:      q.SectionID,
		Search:         strings.TrimSpace(q.Search),
		Checked:        list.CheckedAll,
		Priority:       list.Priority(q.Priority),
		FavoritesOnly:  q.FavoritesOnly == "true",
		RunningLowOnly: q.RunningLowOnly == "true",
		Sort:           list.SortNameAsc,
	}
	if q.Checked != "" {
		filter.Checked = list.CheckedFilter(q.Checked)
	}
	if q.Sort != "" {
		filter.Sort = list.ItemSort(q.Sort)
	}
	applist.View(q.View).Apply(&filter)
	return filter
}

type checkRequest struct {
	Checked *bool `json:"checked"`
}

func bindItem(c *gin.Context) (*ItemRequest, error) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, utils.NewBindError(err)
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// List handles GET /api/items
func (h *ItemHandler) List(c *gin.Context) {
	var query ListItemsQuery
	if err := bindQuery(c, &query); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), query.filter())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, items)
}

// Get handles GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), idParam(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, item)
}

// Create handles POST /api/items
func (h *ItemHandler) Create(c *gin.Context) {
	req, err := bindItem(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	item, restored, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	status := http.StatusCreated
	if restored {
		status = http.StatusOK
	}
	c.JSON(status, restorableResponse{Data: item, Restored: restored})
}

// Update handles PUT /api/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	req, err := bindItem(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), idParam(c), req.input())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, item)
}

// ToggleChecked handles PATCH /api/items/:id/check. An explicit
// {"checked": bool} sets the state; an empty body flips it.
func (h *ItemHandler) ToggleChecked(c *gin.Context) {
	var req checkRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	item, err := h.service.ToggleChecked(c.Request.Context(), idParam(c), req.Checked)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, item)
}

// ToggleFavorite handles PATCH /api/items/:id/favorite
func (h *ItemHandler) ToggleFavorite(c *gin.Context) {
	item, err := h.service.ToggleFavorite(c.Request.Context(), idParam(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, item)
}

// ToggleRunningLow handles PATCH /api/items/:id/running-low
func (h *ItemHandler) ToggleRunningLow(c *gin.Context) {
	item, err := h.service.ToggleRunningLow(c.Request.Context(), idParam(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OK(c, item)
}

// Delete handles DELETE /api/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), idParam(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
