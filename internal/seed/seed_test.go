package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambalancer/internal/model"
	"teambalancer/internal/repository/memory"
)

func TestDemoGroups(t *testing.T) {
	groups := DemoGroups()
	require.Len(t, groups, 6)

	ids := map[string]bool{}
	for _, g := range groups {
		assert.False(t, ids[g.ID], "duplicate group %s", g.ID)
		ids[g.ID] = true
		assert.True(t, g.IsActive)
		assert.NotEmpty(t, g.Players)
	}
	assert.Len(t, groups[1].Players, 14)
	assert.Equal(t, "Jugador 3", groups[0].Players[2].Name)
	assert.Equal(t, "J3", groups[0].Players[2].Nickname)
}

func TestRunReplacesGroups(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewGroupStore()
	require.NoError(t, repo.Create(ctx, &model.Group{ID: "old", Name: "old"}))

	n, err := Run(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	old, err := repo.GetByID(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 6)

	// running twice is idempotent
	n, err = Run(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
