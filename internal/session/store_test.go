package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niems-digital/emslog/internal/models"
)

func record(id, date, summary string) models.Activity {
	return models.Activity{
		ID:           id,
		Date:         date,
		Summary:      summary,
		Description:  "desc",
		ActivityType: "Meeting",
		Participants: []string{},
	}
}

func TestReplaceAll(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{record("a", "2024-10-01", "first")})
	require.Equal(t, 1, s.Len())

	s.ReplaceAll([]models.Activity{
		record("b", "2024-10-02", "second"),
		record("c", "2024-10-03", "third"),
	})
	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestUpsertByID_UnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{record("a", "2024-10-01", "first")})

	before := s.List()
	ok := s.UpsertByID(record("ghost", "2024-10-09", "phantom"))
	assert.False(t, ok)
	assert.Equal(t, before, s.List())
	assert.Equal(t, 1, s.Len())
}

func TestUpsertByID_ReplacesOnlyMatchingRecord(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{
		record("a", "2024-10-01", "first"),
		record("b", "2024-10-02", "second"),
	})

	edited := record("b", "2024-10-02", "second (edited)")
	ok := s.UpsertByID(edited)
	require.True(t, ok)

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Summary)
	assert.Equal(t, "second (edited)", got[1].Summary)
	assert.Equal(t, "b", got[1].ID)
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{record("a", "2024-10-01", "first")})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())
}

func TestGet(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{record("a", "2024-10-01", "first")})

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", got.Summary)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestList_ReturnsCopy(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{record("a", "2024-10-01", "first")})

	got := s.List()
	got[0].Summary = "mutated"

	again := s.List()
	assert.Equal(t, "first", again[0].Summary)
}
