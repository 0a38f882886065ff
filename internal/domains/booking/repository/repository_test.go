package repository

import (
	"shareit/infras/otel/mocks"
	"shareit/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *repositoryImpl {
	t.Helper()

	repo, ok := New(nil, mocks.NewOtel()).(*repositoryImpl)
	require.True(t, ok)

	return repo
}

func TestLockQuery(t *testing.T) {
	query, args, err := newTestRepo(t).lockQuery("b-1").ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT bookings.id, bookings.item_id, bookings.booker_id")
	assert.Contains(t, query, "items.name AS item_name, items.owner_id, users.name AS booker_name")
	assert.Contains(t, query, "FROM bookings JOIN items ON items.id = bookings.item_id JOIN users ON users.id = bookings.booker_id")
	assert.Contains(t, query, "WHERE bookings.id = $1")
	assert.True(t, len(query) > len(lockSuffix) && query[len(query)-len(lockSuffix):] == lockSuffix, query)
	assert.Equal(t, []any{"b-1"}, args)
}

func TestLastApprovedQuery(t *testing.T) {
	query, args, err := newTestRepo(t).lastApprovedQuery("i-1", now).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE bookings.item_id = $1 AND bookings.status = $2 AND bookings.start_date <= $3")
	assert.Contains(t, query, "ORDER BY bookings.start_date DESC, bookings.end_date DESC, bookings.id DESC LIMIT 1")
	assert.Equal(t, []any{"i-1", model.StatusApproved, now}, args)
}

func TestNextApprovedQuery(t *testing.T) {
	query, args, err := newTestRepo(t).nextApprovedQuery("i-1", now).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE bookings.item_id = $1 AND bookings.status = $2 AND bookings.start_date > $3")
	assert.Contains(t, query, "ORDER BY bookings.start_date ASC, bookings.id ASC LIMIT 1")
	assert.Equal(t, []any{"i-1", model.StatusApproved, now}, args)
}

func TestHasCompletedQuery(t *testing.T) {
	query, args, err := newTestRepo(t).hasCompletedQuery("i-1", "u-1", now).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT EXISTS ( SELECT 1 FROM bookings")
	assert.Contains(t, query, "bookings.item_id = $1 AND bookings.booker_id = $2 AND bookings.status = $3 AND bookings.end_date < $4")
	assert.Contains(t, query, "LIMIT 1 )")
	assert.Equal(t, []any{"i-1", "u-1", model.StatusApproved, now}, args)
}

func TestQueries_BindInstantsInUTC(t *testing.T) {
	repo := newTestRepo(t)
	local := now.In(time.FixedZone("UTC+3", 3*60*60))

	builders := map[string]func() (string, []any, error){
		"last":      repo.lastApprovedQuery("i-1", local).ToSql,
		"next":      repo.nextApprovedQuery("i-1", local).ToSql,
		"completed": repo.hasCompletedQuery("i-1", "u-1", local).ToSql,
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			_, args, err := build()
			require.NoError(t, err)

			bound, ok := args[len(args)-1].(time.Time)
			require.True(t, ok)
			assert.Equal(t, time.UTC, bound.Location())
			assert.True(t, bound.Equal(now))
		})
	}
}
