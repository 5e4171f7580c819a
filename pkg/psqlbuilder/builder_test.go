package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("appointments").
		Where(squirrel.Eq{"provider_id": "p-1"}).
		Where(squirrel.GtOrEq{"booking_date": "2025-10-13"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM appointments WHERE provider_id = $1 AND booking_date >= $2", query)
	assert.Equal(t, []interface{}{"p-1", "2025-10-13"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("appointments").
		Set("status", "cancelled").
		Where(squirrel.Eq{"id": 7}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE appointments SET status = $1 WHERE id = $2", query)
	assert.Equal(t, []interface{}{"cancelled", 7}, args)
}
