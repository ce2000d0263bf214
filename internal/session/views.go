package session

import (
	"sort"

	"github.com/niems-digital/emslog/internal/models"
)

// Derived views are pure projections recomputed on every call. They are
// never cached, so they cannot drift from the record list.

// DateGroup is the set of activities sharing one calendar date.
type DateGroup struct {
	Date       string            `json:"date"`
	Activities []models.Activity `json:"activities"`
}

// GroupByDate groups the current records by date, newest date first.
// Within a group, ingestion order is preserved.
func (s *Store) GroupByDate() []DateGroup {
	records := s.List()

	byDate := make(map[string][]models.Activity)
	for _, a := range records {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, DateGroup{Date: d, Activities: byDate[d]})
	}
	return groups
}

// CountBySection15 counts records per mandate label. Records without a
// mandate are not counted.
func (s *Store) CountBySection15() map[string]int {
	counts := make(map[string]int)
	for _, a := range s.List() {
		if a.Section15 != nil {
			counts[*a.Section15]++
		}
	}
	return counts
}

// CountByProgram counts records per program name, using the joined project
// details. Records without a registry match carry no program and are not
// counted.
func (s *Store) CountByProgram() map[string]int {
	counts := make(map[string]int)
	for _, a := range s.List() {
		if a.ProjectDetails != nil {
			counts[a.ProjectDetails.ProgramNameTH]++
		}
	}
	return counts
}

// CountUnmatched counts records whose project code found no registry entry.
func (s *Store) CountUnmatched() int {
	n := 0
	for _, a := range s.List() {
		if a.ProjectUnmatched() {
			n++
		}
	}
	return n
}

// Stats assembles the dashboard summary for the current session.
func (s *Store) Stats() models.SessionStats {
	return models.SessionStats{
		TotalActivities: s.Len(),
		BySection15:     s.CountBySection15(),
		ByProgram:       s.CountByProgram(),
		Unmatched:       s.CountUnmatched(),
	}
}
