package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian-backend/internal/domains/class/model"
	"librarian-backend/internal/infrastructure/memstore"
)

func TestRegisterClass(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.New().Classes())

	first, err := svc.RegisterClass(ctx, model.CreateClassRequest{Name: " 7A "})
	require.NoError(t, err)
	assert.Equal(t, "Class 7A is ready to accept students", first.Message)
	assert.Equal(t, "7A", first.ClassName)

	second, err := svc.RegisterClass(ctx, model.CreateClassRequest{Name: "7A"})
	require.NoError(t, err)
	assert.Equal(t, "Class 7A already exists", second.Message)

	classes, err := svc.ListRegistered(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, []string{}, classes[0].Students)
}

func TestRegisterClass_EmptyName(t *testing.T) {
	_, err := NewService(memstore.New().Classes()).RegisterClass(context.Background(), model.CreateClassRequest{Name: "  "})

	assert.ErrorIs(t, err, model.ErrInvalidClass)
}
