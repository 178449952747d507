package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "librarian-backend/internal/domains/book/model"
	studentModel "librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/infrastructure/memstore"
)

func TestGetStats_Invariants(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	store := memstore.New()

	for _, class := range []string{"7B", "7A", "7B"} {
		require.NoError(t, store.Students().Create(ctx, studentModel.NewStudent("A", "B", class, now)))
	}

	dune := bookModel.NewBook("Dune", "Herbert", 3, now)
	dune.BorrowedCount = 2
	emma := bookModel.NewBook("Emma", "Austen", 1, now)
	emma.Available = false
	require.NoError(t, store.Books().Create(ctx, dune))
	require.NoError(t, store.Books().Create(ctx, emma))

	// act
	stats, err := NewService(store.Stats()).GetStats(ctx)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalStudents)
	assert.Equal(t, 2, stats.TotalBooks)
	assert.Equal(t, 4, stats.TotalCopies)
	assert.Equal(t, 2, stats.BorrowedCopies)
	assert.Equal(t, stats.TotalCopies, stats.AvailableCopies+stats.BorrowedCopies)
	assert.Equal(t, 1, stats.AvailableBooks)
	assert.Equal(t, 2, stats.TotalClasses)
	assert.Equal(t, map[string]int{"7A": 1, "7B": 2}, stats.ClassCounts)
	assert.Equal(t, "50", stats.UtilizationPercent.String())

	sum := 0
	for _, n := range stats.ClassCounts {
		sum += n
	}
	assert.Equal(t, stats.TotalStudents, sum)
}

func TestGetStats_Empty(t *testing.T) {
	stats, err := NewService(memstore.New().Stats()).GetStats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.TotalStudents)
	assert.Equal(t, "0", stats.UtilizationPercent.String())
}
