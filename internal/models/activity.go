package models

// ActivityDraft is the raw record shape produced by the extraction engine.
// Every field is typed `any` because the engine is an external inference
// process with no compile-time contract: optional fields may be absent,
// null, or carry the wrong runtime shape (a scalar where a list is
// expected, a number where a string is expected). The pipeline's sanitize
// step is the only consumer.
type ActivityDraft struct {
	Date         any `json:"date"`
	TimeRange    any `json:"time_range"`
	Summary      any `json:"summary"`
	Description  any `json:"description"`
	Location     any `json:"location"`
	Participants any `json:"participants"`
	ActivityType any `json:"activity_type"`
	ProjectCode  any `json:"project_code"`
	KPICode      any `json:"kpi_code"`
	Section15    any `json:"section15"`
	Region       any `json:"region"`
	OrgUnit      any `json:"org_unit"`
}

// Activity is a fully normalized operational log record. Optional fields
// are pointers and marshal as explicit JSON null when unset; Participants
// is never nil after sanitization.
type Activity struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"` // YYYY-MM-DD, Gregorian
	TimeRange    *string  `json:"time_range"`
	Summary      string   `json:"summary"`
	Description  string   `json:"description"`
	Location     *string  `json:"location"`
	Participants []string `json:"participants"`
	ActivityType string   `json:"activity_type"`

	ProjectCode *string `json:"project_code"`
	// ProjectDetails is the registry join result. Derived, never produced
	// by extraction; absent when ProjectCode has no registry match.
	ProjectDetails *Project `json:"project_details,omitempty"`

	KPICode   *string `json:"kpi_code"`
	Section15 *string `json:"section15"`
	Region    *string `json:"region"`
	OrgUnit   *string `json:"org_unit"`
}

// ProjectUnmatched reports whether the record carries a project code that
// found no registry entry. This is an expected data state, not an error.
func (a Activity) ProjectUnmatched() bool {
	return a.ProjectCode != nil && a.ProjectDetails == nil
}

// SessionStats holds summary counts over the current session's records.
type SessionStats struct {
	TotalActivities int            `json:"total_activities"`
	BySection15     map[string]int `json:"by_section15"`
	ByProgram       map[string]int `json:"by_program"`
	Unmatched       int            `json:"unmatched_projects"`
}
