package repository

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian-backend/internal/domains/book/model"
	"librarian-backend/internal/shared/patch"
)

func TestBuildUpdateStatement(t *testing.T) {
	id := uuid.New()
	p := model.BookPatch{
		Quantity:  patch.Set(5),
		Available: patch.Set(false),
	}

	query, args, err := BuildUpdateStatement(id, p)
	require.NoError(t, err)

	// goqu sorts record keys
	assert.Contains(t, query, `SET "available"=$1,"quantity"=$2`)
	assert.Contains(t, query, `WHERE ("id" = $3)`)
	assert.Contains(t, query, `RETURNING "id", "title", "author", "quantity", "borrowed_count", "available", "created_at"`)
	assert.Equal(t, []interface{}{false, int64(5), id.String()}, args)
}

func TestBuildUpdateStatement_EmptyPatch(t *testing.T) {
	var p model.BookPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &p))

	_, _, err := BuildUpdateStatement(uuid.New(), p)
	assert.ErrorIs(t, err, model.ErrEmptyUpdate)
}
