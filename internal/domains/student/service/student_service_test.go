package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/infrastructure/memstore"
	"librarian-backend/internal/shared/apperror"
	"librarian-backend/internal/shared/patch"
)

func newTestService() *StudentService {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	svc := NewService(memstore.New().Students()).(*StudentService)
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc
}

func create(t *testing.T, svc *StudentService, first, last, class string) *model.Student {
	t.Helper()
	s, err := svc.CreateStudent(context.Background(), model.CreateStudentRequest{
		FirstName: first,
		LastName:  last,
		ClassName: class,
	})
	require.NoError(t, err)
	return s
}

func TestCreateStudent(t *testing.T) {
	svc := newTestService()

	s := create(t, svc, "  Jane ", "Doe", "7A")

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, "Jane", s.FirstName)
	assert.Empty(t, s.BorrowedBooks)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestCreateStudent_Validation(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateStudent(context.Background(), model.CreateStudentRequest{FirstName: "Jane", ClassName: "7A"})

	require.Error(t, err)
	assert.Equal(t, apperror.InvalidArgument, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "last_name is required")
}

func TestListByClassAndClasses(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	create(t, svc, "Jane", "Doe", "7B")
	create(t, svc, "John", "Roe", "7A")
	create(t, svc, "Ann", "Lee", "7B")

	byClass, err := svc.ListByClass(ctx, "7B")
	require.NoError(t, err)
	require.Len(t, byClass, 2)
	assert.Equal(t, "Jane", byClass[0].FirstName)
	assert.Equal(t, "Ann", byClass[1].FirstName)

	caseSensitive, err := svc.ListByClass(ctx, "7b")
	require.NoError(t, err)
	assert.Empty(t, caseSensitive)

	classes, err := svc.ListClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"7A", "7B"}, classes.Classes)
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	s := create(t, svc, "Jane", "Doe", "7A")

	t.Run("only set fields change", func(t *testing.T) {
		updated, err := svc.UpdateStudent(ctx, s.ID.String(), model.StudentPatch{ClassName: patch.Set("8A")})
		require.NoError(t, err)
		assert.Equal(t, "8A", updated.ClassName)
		assert.Equal(t, "Jane", updated.FirstName)
		assert.Equal(t, "Doe", updated.LastName)
	})

	t.Run("empty patch", func(t *testing.T) {
		var p model.StudentPatch
		require.NoError(t, json.Unmarshal([]byte(`{"first_name":null}`), &p))

		_, err := svc.UpdateStudent(ctx, s.ID.String(), p)
		assert.ErrorIs(t, err, model.ErrEmptyUpdate)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateStudent(ctx, uuid.NewString(), model.StudentPatch{FirstName: patch.Set("X")})
		assert.ErrorIs(t, err, model.ErrStudentNotFound)
	})

	t.Run("blank value rejected", func(t *testing.T) {
		_, err := svc.UpdateStudent(ctx, s.ID.String(), model.StudentPatch{FirstName: patch.Set("   ")})
		assert.ErrorIs(t, err, model.ErrInvalidStudent)
	})
}

func TestDeleteStudent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	s := create(t, svc, "Jane", "Doe", "7A")

	resp, err := svc.DeleteStudent(ctx, s.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Student deleted successfully", resp.Message)

	_, err = svc.DeleteStudent(ctx, s.ID.String())
	assert.ErrorIs(t, err, model.ErrStudentNotFound)

	_, err = svc.GetStudent(ctx, s.ID.String())
	assert.ErrorIs(t, err, model.ErrStudentNotFound)
}
