// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/infrastructure/mock"
)

func TestDecideSpaces(t *testing.T) {
	mapping := &MappingConfig{
		DefaultSpaces: []string{"space-a", "space-b"},
		PlansToSpaces: map[string][]string{
			"gold": {"space-b", "space-c"},
		},
	}

	tests := []struct {
		name     string
		planSlug string
		expected []string
	}{
		{
			name:     "plan spaces appended after defaults, duplicates collapsed",
			planSlug: "gold",
			expected: []string{"space-a", "space-b", "space-c"},
		},
		{
			name:     "unknown plan gets the defaults only",
			planSlug: "silver",
			expected: []string{"space-a", "space-b"},
		},
		{
			name:     "unmapped plan gets the defaults only",
			planSlug: model.PlanSlugUnmapped,
			expected: []string{"space-a", "space-b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecideSpaces(mapping, tt.planSlug))
		})
	}
}

func TestDecideSpaces_EmptyMapping(t *testing.T) {
	assert.Empty(t, DecideSpaces(&MappingConfig{}, "gold"))
}

func TestMemberReconciler_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("applies adds and removes in sorted order", func(t *testing.T) {
		circle := mock.NewMockCircleRegistry()
		reconciler := NewMemberReconciler(circle)

		index := NewMembershipIndex()
		index.Add("jane@example.com", "g9")
		index.Add("jane@example.com", "g8")

		result := reconciler.Reconcile(ctx, "jane@example.com", []string{"g2", "g1"}, index, false)

		assert.Equal(t, 2, result.Adds)
		assert.Equal(t, 2, result.Removes)
		assert.Equal(t, 0, result.Errors)

		require.Len(t, circle.SpaceAdds, 2)
		assert.Equal(t, "g1", circle.SpaceAdds[0].SpaceID)
		assert.Equal(t, "g2", circle.SpaceAdds[1].SpaceID)

		require.Len(t, circle.SpaceRemoves, 2)
		assert.Equal(t, "g8", circle.SpaceRemoves[0].SpaceID)
		assert.Equal(t, "g9", circle.SpaceRemoves[1].SpaceID)
	})

	t.Run("overlapping spaces are untouched", func(t *testing.T) {
		circle := mock.NewMockCircleRegistry()
		reconciler := NewMemberReconciler(circle)

		index := NewMembershipIndex()
		index.Add("a@x.com", "g2")
		index.Add("a@x.com", "g3")

		result := reconciler.Reconcile(ctx, "a@x.com", []string{"g1", "g2"}, index, false)

		assert.Equal(t, 1, result.Adds)
		assert.Equal(t, 1, result.Removes)
		require.Len(t, circle.SpaceAdds, 1)
		assert.Equal(t, "g1", circle.SpaceAdds[0].SpaceID)
		require.Len(t, circle.SpaceRemoves, 1)
		assert.Equal(t, "g3", circle.SpaceRemoves[0].SpaceID)
	})

	t.Run("matching state is a no-op", func(t *testing.T) {
		circle := mock.NewMockCircleRegistry()
		reconciler := NewMemberReconciler(circle)

		index := NewMembershipIndex()
		index.Add("jane@example.com", "g1")
		index.Add("jane@example.com", "g2")

		result := reconciler.Reconcile(ctx, "jane@example.com", []string{"g1", "g2"}, index, false)

		assert.Zero(t, result.Adds)
		assert.Zero(t, result.Removes)
		assert.Empty(t, result.Details)
		assert.Empty(t, circle.SpaceAdds)
		assert.Empty(t, circle.SpaceRemoves)
	})

	t.Run("dry run records intents without calling circle", func(t *testing.T) {
		circle := mock.NewMockCircleRegistry()
		reconciler := NewMemberReconciler(circle)

		index := NewMembershipIndex()
		index.Add("jane@example.com", "g9")

		result := reconciler.Reconcile(ctx, "jane@example.com", []string{"g1"}, index, true)

		assert.Equal(t, 1, result.Adds)
		assert.Equal(t, 1, result.Removes)
		assert.Empty(t, circle.SpaceAdds)
		assert.Empty(t, circle.SpaceRemoves)

		require.Len(t, result.Details, 2)
		assert.Equal(t, model.ActionAddToSpace, result.Details[0].Action)
		assert.True(t, result.Details[0].DryRun)
		assert.Equal(t, model.ActionRemoveFromSpace, result.Details[1].Action)
		assert.True(t, result.Details[1].DryRun)
	})

	t.Run("one space failing does not stop the rest", func(t *testing.T) {
		circle := mock.NewMockCircleRegistry()
		circle.SetErrorForOperation("RemoveMemberFromSpace", errors.New("forbidden"))
		reconciler := NewMemberReconciler(circle)

		index := NewMembershipIndex()
		index.Add("jane@example.com", "g9")

		result := reconciler.Reconcile(ctx, "jane@example.com", []string{"g1"}, index, false)

		assert.Equal(t, 1, result.Adds, "the add still lands")
		assert.Equal(t, 0, result.Removes)
		assert.Equal(t, 1, result.Errors)

		require.Len(t, result.Details, 2)
		errDetail := result.Details[1]
		assert.Equal(t, model.ActionRemoveFromSpace, errDetail.Action)
		assert.Equal(t, model.ResultError, errDetail.Result)
		assert.Equal(t, "forbidden", errDetail.Error)
	})

	t.Run("converging twice against refreshed state is a no-op", func(t *testing.T) {
		circle := mock.NewMockCircleRegistry()
		circle.SetSpaceMembers("g1", nil)
		reconciler := NewMemberReconciler(circle)

		desired := []string{"g1", "g2"}

		index, err := BuildMembershipIndex(ctx, circle)
		require.NoError(t, err)
		first := reconciler.Reconcile(ctx, "jane@example.com", desired, index, false)
		assert.Equal(t, 2, first.Adds)

		index, err = BuildMembershipIndex(ctx, circle)
		require.NoError(t, err)
		second := reconciler.Reconcile(ctx, "jane@example.com", desired, index, false)
		assert.Zero(t, second.Adds)
		assert.Zero(t, second.Removes)
	})
}
