package list

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historydomain "hungrylist/internal/domain/history"
	"hungrylist/internal/domain/list"
	"hungrylist/internal/shared/errors"
)

func seedSection(t *testing.T, e *testEnv, name string) *list.Section {
	t.Helper()
	s, _, err := e.sections.Create(context.Background(), list.SectionInput{Name: name, Icon: "🛒", Color: "#123456"})
	require.NoError(t, err)
	return s
}

func TestItemService_CreateAndDuplicate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	s := seedSection(t, e, "Dairy")

	item, restored, err := e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: "Milk", Description: "**2%** only"})
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Equal(t, "soon", item.Priority)
	assert.Contains(t, item.DescriptionHTML, "<strong>2%</strong>")

	_, _, err = e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: " milk "})
	assert.True(t, errors.HasCode(err, list.CodeDuplicateItem))

	_, _, err = e.items.Create(ctx, list.ItemInput{SectionID: "nope", Name: "Milk"})
	assert.True(t, errors.HasCode(err, list.CodeInvalidSection))
}

func TestItemService_CreateReactivatesTombstone(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	s := seedSection(t, e, "Dairy")

	item, _, err := e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: "Milk"})
	require.NoError(t, err)
	_, err = e.items.ToggleFavorite(ctx, item.ID)
	require.NoError(t, err)
	require.NoError(t, e.items.Delete(ctx, item.ID))

	_, err = e.items.Get(ctx, item.ID)
	assert.True(t, errors.HasCode(err, list.CodeItemNotFound))

	again, restored, err := e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: "MILK", Priority: list.PriorityMust})
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, item.ID, again.ID)
	assert.True(t, again.Favorite)
	assert.Equal(t, "must", again.Priority)
	assert.Nil(t, again.DeletedAt)
}

func TestItemService_Toggles(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	s := seedSection(t, e, "Dairy")
	item, _, err := e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: "Milk"})
	require.NoError(t, err)

	e.clock.Advance(time.Hour)
	checked, err := e.items.ToggleChecked(ctx, item.ID, nil)
	require.NoError(t, err)
	assert.True(t, checked.Checked)
	require.NotNil(t, checked.LastCheckedAt)
	assert.True(t, checked.LastCheckedAt.Equal(e.clock.Now()))

	explicit := true
	still, err := e.items.ToggleChecked(ctx, item.ID, &explicit)
	require.NoError(t, err)
	assert.True(t, still.Checked)

	unchecked, err := e.items.ToggleChecked(ctx, item.ID, nil)
	require.NoError(t, err)
	assert.False(t, unchecked.Checked)
	assert.NotNil(t, unchecked.LastCheckedAt)

	low, err := e.items.ToggleRunningLow(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, low.RunningLow)

	events, err := e.ledger.List(ctx, historydomain.Filter{EntityType: historydomain.EntityItem, EntityID: item.ID})
	require.NoError(t, err)
	actions := make([]string, len(events))
	for i, ev := range events {
		actions[i] = ev.Action
	}
	assert.Equal(t, []string{
		historydomain.ActionRunningLowOn,
		historydomain.ActionUnchecked,
		historydomain.ActionChecked,
		historydomain.ActionChecked,
		historydomain.ActionCreated,
	}, actions)
}

func TestItemService_ListViews(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	s := seedSection(t, e, "Pantry")

	rice, _, err := e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: "Rice", RemindEveryDays: 7})
	require.NoError(t, err)
	_, _, err = e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: "Lentils", RemindEveryDays: 30})
	require.NoError(t, err)
	tea, _, err := e.items.Create(ctx, list.ItemInput{SectionID: s.ID, Name: "Tea"})
	require.NoError(t, err)
	_, err = e.items.ToggleFavorite(ctx, tea.ID)
	require.NoError(t, err)

	e.clock.Advance(8 * 24 * time.Hour)

	var reminders list.ItemFilter
	ViewReminders.Apply(&reminders)
	due, err := e.items.List(ctx, reminders)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, rice.ID, due[0].ID)
	assert.True(t, due[0].ReminderDue)

	var favorites list.ItemFilter
	ViewFavorites.Apply(&favorites)
	favs, err := e.items.List(ctx, favorites)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Tea", favs[0].Name)

	var everything list.ItemFilter
	ViewMyList.Apply(&everything)
	all, err := e.items.List(ctx, everything)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestItemService_UpdateMovesSection(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	dairy := seedSection(t, e, "Dairy")
	pantry := seedSection(t, e, "Pantry")

	milk, _, err := e.items.Create(ctx, list.ItemInput{SectionID: dairy.ID, Name: "Milk"})
	require.NoError(t, err)
	_, _, err = e.items.Create(ctx, list.ItemInput{SectionID: pantry.ID, Name: "Oat Milk"})
	require.NoError(t, err)

	_, err = e.items.Update(ctx, milk.ID, list.ItemInput{SectionID: pantry.ID, Name: "oat milk"})
	assert.True(t, errors.HasCode(err, list.CodeDuplicateItem))

	moved, err := e.items.Update(ctx, milk.ID, list.ItemInput{SectionID: pantry.ID, Name: "Milk", Priority: list.PriorityOptional})
	require.NoError(t, err)
	assert.Equal(t, pantry.ID, moved.SectionID)
	assert.Equal(t, "optional", moved.Priority)
}
