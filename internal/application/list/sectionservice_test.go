package list

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historydomain "hungrylist/internal/domain/history"
	"hungrylist/internal/domain/list"
	"hungrylist/internal/shared/errors"
)

func TestSectionService_Bootstrap(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	n, err := e.sections.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = e.sections.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	sections, err := e.sections.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Indian Grocery", sections[0].Name)
	assert.Equal(t, "#f97316", sections[0].Color)
	assert.Equal(t, "Asian Grocery", sections[1].Name)
}

func TestSectionService_CreateDuplicate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, _, err := e.sections.Create(ctx, list.SectionInput{Name: "Dairy", Icon: "🥛", Color: "#ffffff"})
	require.NoError(t, err)

	_, _, err = e.sections.Create(ctx, list.SectionInput{Name: "  DAIRY ", Icon: "🥛", Color: "#ffffff"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, list.CodeDuplicateSection))
	assert.Equal(t, 409, errors.GetAppError(err).Status)
}

func TestSectionService_DeleteCascadesAndGuardsLast(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	dairy, _, err := e.sections.Create(ctx, list.SectionInput{Name: "Dairy", Icon: "🥛", Color: "#ffffff"})
	require.NoError(t, err)
	produce, _, err := e.sections.Create(ctx, list.SectionInput{Name: "Produce", Icon: "🥕", Color: "#00ff00"})
	require.NoError(t, err)
	_, _, err = e.items.Create(ctx, list.ItemInput{SectionID: dairy.ID, Name: "Milk"})
	require.NoError(t, err)

	require.NoError(t, e.sections.Delete(ctx, dairy.ID))

	items, err := e.items.List(ctx, list.ItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	err = e.sections.Delete(ctx, produce.ID)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeLastSection))

	err = e.sections.Delete(ctx, dairy.ID)
	assert.True(t, errors.HasCode(err, list.CodeSectionNotFound))

	all, err := e.sections.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSectionService_CreateReactivatesTombstone(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	dairy, _, err := e.sections.Create(ctx, list.SectionInput{Name: "Dairy", Icon: "🥛", Color: "#ffffff"})
	require.NoError(t, err)
	_, _, err = e.sections.Create(ctx, list.SectionInput{Name: "Produce", Icon: "🥕", Color: "#00ff00"})
	require.NoError(t, err)
	require.NoError(t, e.sections.Delete(ctx, dairy.ID))

	again, restored, err := e.sections.Create(ctx, list.SectionInput{Name: "dairy", Icon: "🧀", Color: "#eeeeee"})
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, dairy.ID, again.ID)
	assert.Nil(t, again.DeletedAt)
	assert.Equal(t, "🧀", again.Icon)

	events, err := e.ledger.List(ctx, historydomain.Filter{EntityType: historydomain.EntitySection, EntityID: dairy.ID})
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, historydomain.ActionRestored, events[0].Action)
}

func TestSectionService_Update(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	dairy, _, err := e.sections.Create(ctx, list.SectionInput{Name: "Dairy", Icon: "🥛", Color: "#ffffff"})
	require.NoError(t, err)
	_, _, err = e.sections.Create(ctx, list.SectionInput{Name: "Produce", Icon: "🥕", Color: "#00ff00"})
	require.NoError(t, err)

	_, err = e.sections.Update(ctx, dairy.ID, list.SectionInput{Name: "produce", Icon: "🥛", Color: "#ffffff"})
	assert.True(t, errors.HasCode(err, list.CodeDuplicateSection))

	updated, err := e.sections.Update(ctx, dairy.ID, list.SectionInput{Name: "Dairy & Eggs", Icon: "🥚", Color: "#fafafa"})
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", updated.Name)
	assert.Equal(t, "dairy & eggs", updated.NormalizedName)

	_, err = e.sections.Update(ctx, "missing", list.SectionInput{Name: "X", Icon: "x", Color: "#000000"})
	assert.True(t, errors.HasCode(err, list.CodeSectionNotFound))
}
