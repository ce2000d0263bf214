package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niems-digital/emslog/internal/models"
)

func strPtr(s string) *string { return &s }

func TestGroupByDate_NewestFirstStableWithinDay(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{
		record("a", "2024-10-01", "morning"),
		record("b", "2024-10-02", "next day"),
		record("c", "2024-10-01", "afternoon"),
	})

	groups := s.GroupByDate()
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-10-02", groups[0].Date)
	assert.Equal(t, "2024-10-01", groups[1].Date)

	day1 := groups[1].Activities
	require.Len(t, day1, 2)
	assert.Equal(t, "morning", day1[0].Summary)
	assert.Equal(t, "afternoon", day1[1].Summary)
}

func TestCountBySection15(t *testing.T) {
	research := "15(4) Research & Development (ศึกษา/วิจัย)"
	coord := "15(5) Coordination (ประสานงาน/กู้ชีพ)"

	a := record("a", "2024-10-01", "one")
	a.Section15 = strPtr(research)
	b := record("b", "2024-10-01", "two")
	b.Section15 = strPtr(research)
	c := record("c", "2024-10-01", "three")
	c.Section15 = strPtr(coord)
	d := record("d", "2024-10-01", "untagged")

	s := NewStore()
	s.ReplaceAll([]models.Activity{a, b, c, d})

	counts := s.CountBySection15()
	assert.Equal(t, 2, counts[research])
	assert.Equal(t, 1, counts[coord])
	assert.Len(t, counts, 2)
}

func TestCountByProgramAndUnmatched(t *testing.T) {
	a := record("a", "2024-10-01", "joined")
	a.ProjectCode = strPtr("F-69-2-98-10-1-00-2")
	a.ProjectDetails = &models.Project{
		Code:          "F-69-2-98-10-1-00-2",
		ProgramNameTH: "แผนงานยุทธศาสตร์เสริมสร้างให้คนมีสุขภาวะที่ดี",
	}
	b := record("b", "2024-10-01", "unmatched")
	b.ProjectCode = strPtr("X-00-0")
	c := record("c", "2024-10-01", "no project")

	s := NewStore()
	s.ReplaceAll([]models.Activity{a, b, c})

	byProgram := s.CountByProgram()
	assert.Equal(t, 1, byProgram["แผนงานยุทธศาสตร์เสริมสร้างให้คนมีสุขภาวะที่ดี"])
	assert.Len(t, byProgram, 1)

	assert.Equal(t, 1, s.CountUnmatched())

	stats := s.Stats()
	assert.Equal(t, 3, stats.TotalActivities)
	assert.Equal(t, 1, stats.Unmatched)
}

func TestViews_RecomputedAfterMutation(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Activity{record("a", "2024-10-01", "one")})
	require.Len(t, s.GroupByDate(), 1)

	s.Clear()
	assert.Empty(t, s.GroupByDate())
	assert.Equal(t, 0, s.Stats().TotalActivities)
}
