// Package pipeline turns raw extraction-engine drafts into normalized,
// registry-enriched activity records. Sanitize and Enrich are pure and
// total; Normalize composes them with identity assignment and the
// required-field policy.
package pipeline

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/niems-digital/emslog/internal/metrics"
	"github.com/niems-digital/emslog/internal/models"
	"github.com/niems-digital/emslog/internal/registry"
	"github.com/niems-digital/emslog/internal/taxonomy"
)

// Sanitize coerces a draft into the typed Activity shape. It never panics
// regardless of what runtime shapes the engine produced: optional fields
// become nil unless they carry a non-blank string, participants becomes a
// string slice (empty, never nil, when absent or wrongly shaped), and enum
// fields outside the taxonomy are discarded. Required string fields are
// coerced to "" when missing or non-string; enforcing their presence is
// Normalize's job. The record ID is not assigned here.
func Sanitize(d models.ActivityDraft) models.Activity {
	a := models.Activity{
		Date:         coerceRequired(d.Date),
		TimeRange:    coerceOptional(d.TimeRange),
		Summary:      coerceRequired(d.Summary),
		Description:  coerceRequired(d.Description),
		Location:     coerceOptional(d.Location),
		Participants: coerceParticipants(d.Participants),
		ActivityType: coerceRequired(d.ActivityType),
		ProjectCode:  coerceOptional(d.ProjectCode),
		KPICode:      coerceOptional(d.KPICode),
		Section15:    coerceOptional(d.Section15),
		Region:       coerceOptional(d.Region),
		OrgUnit:      coerceOptional(d.OrgUnit),
	}

	// Engines occasionally invent enum values; treat them as unset rather
	// than letting unknown labels leak into dashboards.
	if a.Section15 != nil && !taxonomy.IsSection15(*a.Section15) {
		a.Section15 = nil
	}
	if a.Region != nil && !taxonomy.IsRegion(*a.Region) {
		a.Region = nil
	}
	if a.ActivityType != "" && !taxonomy.IsActivityType(a.ActivityType) {
		a.ActivityType = "Other"
	}

	return a
}

// Enrich joins the record against the project registry and applies the
// mandate fallback: a missing Section15 is filled from the matched
// project's main mandate. A Section15 already present is never
// overwritten. Enrich on its own output is a no-op.
func Enrich(a models.Activity, reg *registry.Registry) models.Activity {
	a.ProjectDetails = nil
	if a.ProjectCode != nil {
		if p, ok := reg.Lookup(*a.ProjectCode); ok {
			a.ProjectDetails = &p
		}
	}
	if a.Section15 == nil && a.ProjectDetails != nil && a.ProjectDetails.Section15Main != nil {
		s := *a.ProjectDetails.Section15Main
		a.Section15 = &s
	}
	return a
}

// Normalize processes a batch of drafts in order: sanitize, enforce the
// required-field policy, assign a session-unique ID, enrich. Drafts whose
// date, summary, description, or activity type is still empty after
// coercion are dropped with a diagnostic; one bad draft never fails the
// batch. The output order matches the input order.
func Normalize(drafts []models.ActivityDraft, reg *registry.Registry, logger *slog.Logger) []models.Activity {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]models.Activity, 0, len(drafts))
	for i, d := range drafts {
		a := Sanitize(d)
		if field := missingRequired(a); field != "" {
			logger.Warn("dropping malformed draft record",
				"index", i, "missing", field, "summary", a.Summary)
			metrics.Inc(metrics.RecordsDropped)
			continue
		}

		a.ID = uuid.NewString()
		a = Enrich(a, reg)

		if a.ProjectUnmatched() {
			logger.Info("project code has no registry match",
				"project_code", *a.ProjectCode, "summary", a.Summary)
			metrics.Inc(metrics.RegistryMisses)
		}

		out = append(out, a)
	}
	return out
}

// missingRequired names the first empty required field, or "" when the
// record is complete.
func missingRequired(a models.Activity) string {
	switch {
	case a.Date == "":
		return "date"
	case a.Summary == "":
		return "summary"
	case a.Description == "":
		return "description"
	case a.ActivityType == "":
		return "activity_type"
	}
	return ""
}

// coerceRequired keeps strings and collapses every other shape to "".
func coerceRequired(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceOptional keeps non-blank strings and collapses every other shape
// (absent, null, number, object) to nil.
func coerceOptional(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// coerceParticipants accepts only a list shape; anything else becomes an
// empty slice. Non-string elements are skipped.
func coerceParticipants(v any) []string {
	out := []string{}
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, el := range list {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
