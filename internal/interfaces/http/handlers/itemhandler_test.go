package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungrylist/internal/application/list/dto"
	"hungrylist/internal/domain/list"
	"hungrylist/internal/interfaces/http/handlers/testutil"
	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/logger"
)

type mockItemService struct {
	items     []*dto.ItemDTO
	item      *dto.ItemDTO
	restored  bool
	err       error
	gotFilter list.ItemFilter
	gotInput  list.ItemInput
	gotID     string
	gotCheck  *bool
	calls     []string
}

func (m *mockItemService) List(_ context.Context, filter list.ItemFilter) ([]*dto.ItemDTO, error) {
	m.gotFilter = filter
	return m.items, m.err
}

func (m *mockItemService) Get(_ context.Context, id string) (*dto.ItemDTO, error) {
	m.gotID = id
	return m.item, m.err
}

func (m *mockItemService) Create(_ context.Context, in list.ItemInput) (*dto.ItemDTO, bool, error) {
	m.gotInput = in
	return m.item, m.restored, m.err
}

func (m *mockItemService) Update(_ context.Context, id string, in list.ItemInput) (*dto.ItemDTO, error) {
	m.gotID, m.gotInput = id, in
	return m.item, m.err
}

func (m *mockItemService) Delete(_ context.Context, id string) error {
	m.gotID = id
	return m.err
}

func (m *mockItemService) ToggleChecked(_ context.Context, id string, explicit *bool) (*dto.ItemDTO, error) {
	m.gotID, m.gotCheck = id, explicit
	m.calls = append(m.calls, "check")
	return m.item, m.err
}

func (m *mockItemService) ToggleFavorite(_ context.Context, id string) (*dto.ItemDTO, error) {
	m.gotID = id
	m.calls = append(m.calls, "favorite")
	return m.item, m.err
}

func (m *mockItemService) ToggleRunningLow(_ context.Context, id string) (*dto.ItemDTO, error) {
	m.gotID = id
	m.calls = append(m.calls, "running-low")
	return m.item, m.err
}

func testItemDTO() *dto.ItemDTO {
	return &dto.ItemDTO{ID: "item-1", SectionID: "sec-1", Name: "Paneer", Priority: "soon"}
}

func TestItemHandler_List_Defaults(t *testing.T) {
	svc := &mockItemService{items: []*dto.ItemDTO{testItemDTO()}}
	h := NewItemHandler(svc, logger.NewDiscard())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/items", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, list.CheckedAll, svc.gotFilter.Checked)
	assert.Equal(t, list.SortNameAsc, svc.gotFilter.Sort)
	assert.False(t, svc.gotFilter.FavoritesOnly)

	var out []dto.ItemDTO
	require.NoError(t, testutil.ParseData(w, &out))
	assert.Len(t, out, 1)
}

func TestItemHandler_List_Views(t *testing.T) {
	tests := []struct {
		view   string
		assert func(t *testing.T, f list.ItemFilter)
	}{
		{"favorites", func(t *testing.T, f list.ItemFilter) { assert.True(t, f.FavoritesOnly) }},
		{"runningLow", func(t *testing.T, f list.ItemFilter) { assert.True(t, f.RunningLowOnly) }},
		{"reminders", func(t *testing.T, f list.ItemFilter) { assert.True(t, f.RemindersOnly) }},
		{"nextTrip", func(t *testing.T, f list.ItemFilter) {
			assert.False(t, f.FavoritesOnly || f.RunningLowOnly || f.RemindersOnly)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			svc := &mockItemService{}
			h := NewItemHandler(svc, logger.NewDiscard())

			c, w := testutil.NewTestContext(http.MethodGet, "/api/items", nil)
			testutil.SetQueryParams(c, map[string]string{"view": tt.view})
			h.List(c)

			require.Equal(t, http.StatusOK, w.Code)
			tt.assert(t, svc.gotFilter)
		})
	}
}

func TestItemHandler_List_Filters(t *testing.T) {
	svc := &mockItemService{}
	h := NewItemHandler(svc, logger.NewDiscard())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/items", nil)
	testutil.SetQueryParams(c, map[string]string{
		"sectionId":      "sec-1",
		"search":         " milk ",
		"checked":        "unchecked",
		"priority":       "must",
		"sort":           "updated_desc",
		"runningLowOnly": "true",
	})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, list.ItemFilter{
		SectionID:      "sec-1",
		Search:         "milk",
		Checked:        list.CheckedNone,
		Priority:       list.PriorityMust,
		RunningLowOnly: true,
		Sort:           list.SortUpdatedDesc,
	}, svc.gotFilter)
}

func TestItemHandler_List_InvalidQuery(t *testing.T) {
	for _, params := range []map[string]string{
		{"checked": "maybe"},
		{"sort": "random"},
		{"favoritesOnly": "1"},
		{"view": "archive"},
	} {
		h := NewItemHandler(&mockItemService{}, logger.NewDiscard())
		c, w := testutil.NewTestContext(http.MethodGet, "/api/items", nil)
		testutil.SetQueryParams(c, params)
		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, params)
	}
}

func TestItemHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockItemService{item: testItemDTO()}
		h := NewItemHandler(svc, logger.NewDiscard())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/items", map[string]any{
			"sectionId": "sec-1", "name": " Paneer ", "remindEveryDays": 7,
		})
		h.Create(c)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Paneer", svc.gotInput.Name)
		assert.Equal(t, 7, svc.gotInput.RemindEveryDays)
		assert.Equal(t, list.Priority(""), svc.gotInput.Priority, "service applies the default")

		var resp testutil.DataResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Restored)
		assert.False(t, *resp.Restored)
	})

	t.Run("restored", func(t *testing.T) {
		svc := &mockItemService{item: testItemDTO(), restored: true}
		h := NewItemHandler(svc, logger.NewDiscard())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/items", map[string]any{"sectionId": "sec-1", "name": "Paneer"})
		h.Create(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("inactive section", func(t *testing.T) {
		svc := &mockItemService{err: list.ErrInvalidSection()}
		h := NewItemHandler(svc, logger.NewDiscard())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/items", map[string]any{"sectionId": "gone", "name": "Paneer"})
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, list.CodeInvalidSection, testutil.ParseError(w).Code)
	})
}

func TestItemHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"no section", map[string]any{"name": "Paneer"}},
		{"blank name", map[string]any{"sectionId": "sec-1", "name": "  "}},
		{"long description", map[string]any{"sectionId": "sec-1", "name": "Paneer", "description": strings.Repeat("a", 501)}},
		{"bad priority", map[string]any{"sectionId": "sec-1", "name": "Paneer", "priority": "urgent"}},
		{"reminder too long", map[string]any{"sectionId": "sec-1", "name": "Paneer", "remindEveryDays": 366}},
		{"negative reminder", map[string]any{"sectionId": "sec-1", "name": "Paneer", "remindEveryDays": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewItemHandler(&mockItemService{}, logger.NewDiscard())

			c, w := testutil.NewTestContext(http.MethodPost, "/api/items", tt.body)
			h.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, errors.CodeValidation, testutil.ParseError(w).Code)
		})
	}
}

func TestItemHandler_Get_NotFound(t *testing.T) {
	svc := &mockItemService{err: list.ErrItemNotFound()}
	h := NewItemHandler(svc, logger.NewDiscard())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/items/nope", nil)
	testutil.SetURLParam(c, "id", "nope")
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, list.CodeItemNotFound, testutil.ParseError(w).Code)
}

func TestItemHandler_ToggleChecked(t *testing.T) {
	t.Run("empty body flips", func(t *testing.T) {
		svc := &mockItemService{item: testItemDTO()}
		h := NewItemHandler(svc, logger.NewDiscard())

		c, w := testutil.NewTestContext(http.MethodPatch, "/api/items/item-1/check", nil)
		testutil.SetURLParam(c, "id", "item-1")
		h.ToggleChecked(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, svc.gotCheck)
	})

	t.Run("explicit state", func(t *testing.T) {
		svc := &mockItemService{item: testItemDTO()}
		h := NewItemHandler(svc, logger.NewDiscard())

		c, w := testutil.NewTestContext(http.MethodPatch, "/api/items/item-1/check", map[string]any{"checked": false})
		testutil.SetURLParam(c, "id", "item-1")
		h.ToggleChecked(c)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.gotCheck)
		assert.False(t, *svc.gotCheck)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewItemHandler(&mockItemService{}, logger.NewDiscard())

		c, w := testutil.NewRawTestContext(http.MethodPatch, "/api/items/item-1/check", `{"checked": "yes"}`)
		testutil.SetURLParam(c, "id", "item-1")
		h.ToggleChecked(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestItemHandler_Toggles(t *testing.T) {
	svc := &mockItemService{item: testItemDTO()}
	h := NewItemHandler(svc, logger.NewDiscard())

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/items/item-1/favorite", nil)
	testutil.SetURLParam(c, "id", "item-1")
	h.ToggleFavorite(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodPatch, "/api/items/item-1/running-low", nil)
	testutil.SetURLParam(c, "id", "item-1")
	h.ToggleRunningLow(c)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"favorite", "running-low"}, svc.calls)
}

func TestItemHandler_Delete(t *testing.T) {
	svc := &mockItemService{}
	h := NewItemHandler(svc, logger.NewDiscard())

	c, _ := testutil.NewTestContext(http.MethodDelete, "/api/items/item-1", nil)
	testutil.SetURLParam(c, "id", "item-1")
	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "item-1", svc.gotID)
}
