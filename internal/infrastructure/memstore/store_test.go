package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "librarian-backend/internal/domains/book/model"
	studentModel "librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/shared/patch"
)

func TestStudents_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := New()
	s := studentModel.NewStudent("Jane", "Doe", "7A", time.Now())
	require.NoError(t, store.Students().Create(ctx, s))

	got, err := store.Students().GetByID(ctx, s.ID)
	require.NoError(t, err)
	got.FirstName = "Mutated"

	again, err := store.Students().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.FirstName)
}

func TestStudents_ListOrderAndCap(t *testing.T) {
	ctx := context.Background()
	store := New()
	now := time.Now()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.Students().Create(ctx, studentModel.NewStudent(name, "x", "7A", now)))
	}

	list, err := store.Students().List(ctx, 2)
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].FirstName)
	assert.Equal(t, "b", list[1].FirstName)
}

func TestStudents_UpdateMissing(t *testing.T) {
	got, err := New().Students().Update(context.Background(), studentModel.NewStudent("a", "b", "c", time.Now()).ID,
		studentModel.StudentPatch{FirstName: patch.Set("x")})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBooks_MergeCopies(t *testing.T) {
	ctx := context.Background()
	store := New()
	b := bookModel.NewBook("Dune", "Herbert", 2, time.Now())
	require.NoError(t, store.Books().Create(ctx, b))

	merged, created, err := store.Books().MergeCopies(ctx, bookModel.NewBook("Dune", "Herbert", 3, time.Now()))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, b.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)

	other, created, err := store.Books().MergeCopies(ctx, bookModel.NewBook("dune", "Herbert", 1, time.Now()))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, b.ID, other.ID)
}

func TestBooks_MergeCopiesConcurrentNewTitle(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := store.Books().MergeCopies(ctx, bookModel.NewBook("Emma", "Austen", 1, time.Now()))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	books, err := store.Books().List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 8, books[0].Quantity)
}

func TestClasses_EnsureExistsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := New()

	created, err := store.Classes().EnsureExists(ctx, "7A", time.Now())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.Classes().EnsureExists(ctx, "7A", time.Now())
	require.NoError(t, err)
	assert.False(t, created)

	c, err := store.Classes().GetByName(ctx, "7A")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Empty(t, c.Students)
}
