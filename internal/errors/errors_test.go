package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ExplicitCategoryAndComponent(t *testing.T) {
	t.Parallel()

	ee := New(fmt.Errorf("boom")).
		Component("datastore").
		Category(CategoryDatabase).
		Context("table", "categories").
		Build()

	assert.Equal(t, "boom", ee.Error())
	assert.Equal(t, "datastore", ee.GetComponent())
	assert.Equal(t, CategoryDatabase, ee.Category)
	assert.Equal(t, "categories", ee.GetContext()["table"])
	assert.False(t, ee.GetTimestamp().IsZero())
}

func TestBuild_DetectsCategoryFromMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"conflict", NewStd("category already exists"), CategoryConflict},
		{"not found", NewStd("country not found"), CategoryNotFound},
		{"validation", NewStd("invalid rating"), CategoryValidation},
		{"timeout", NewStd("context deadline exceeded"), CategoryTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ee := New(tt.err).Component("test").Build()
			assert.Equal(t, tt.want, ee.Category)
		})
	}
}

func TestBuild_InheritsCategoryFromWrappedError(t *testing.T) {
	t.Parallel()

	inner := New(NewStd("name collision")).Category(CategoryConflict).Build()
	outer := New(fmt.Errorf("create category: %w", inner)).Component("api").Build()

	assert.Equal(t, CategoryConflict, outer.Category)
	assert.True(t, IsConflict(outer))
}

func TestIsAndAs_ThroughEnhancedError(t *testing.T) {
	t.Parallel()

	sentinel := NewStd("sentinel")
	ee := New(fmt.Errorf("wrapped: %w", sentinel)).Category(CategoryNotFound).Build()

	assert.True(t, Is(ee, sentinel))
	assert.True(t, IsNotFound(ee))
	assert.False(t, IsDatabase(ee))

	var target *EnhancedError
	require.True(t, As(fmt.Errorf("outer: %w", ee), &target))
	assert.Equal(t, CategoryNotFound, target.Category)
}

func TestGetContext_ReturnsCopy(t *testing.T) {
	t.Parallel()

	ee := New(NewStd("x")).Category(CategoryGeneric).Context("k", "v").Build()
	ctx := ee.GetContext()
	ctx["k"] = "changed"

	assert.Equal(t, "v", ee.GetContext()["k"])
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	ee := ValidationError("name is required")
	assert.Equal(t, CategoryValidation, ee.Category)
	assert.Equal(t, "name is required", ee.Error())
}

func TestLookupComponent_PrefersLongestPattern(t *testing.T) {
	t.Parallel()

	got := lookupComponent("github.com/tphakala/pokereview/internal/datastore/session.(*GormSession).Save")
	assert.Equal(t, "datastore.session", got)

	assert.Equal(t, ComponentUnknown, lookupComponent("runtime.goexit"))
}
