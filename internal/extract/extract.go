// Package extract defines the contract with the external text-to-structure
// inference engine and the backends that implement it. The engine's
// reasoning is opaque; this package owns the prompt framing, the response
// schema, and the response decoding. Everything downstream of the decoded
// draft array belongs to the pipeline package.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/niems-digital/emslog/internal/models"
	"github.com/niems-digital/emslog/internal/taxonomy"
	"github.com/niems-digital/emslog/pkg/textutil"
)

// Engine converts raw Thai-language log text into draft activity records.
// A failed call returns a single error and no partial results.
type Engine interface {
	Extract(ctx context.Context, logText string) ([]models.ActivityDraft, error)
}

// extractionPromptTemplate frames the parsing task. Log content is injected
// XML-escaped inside the <log> tag to prevent prompt injection.
const extractionPromptTemplate = `You are a parser for the NIEMS EMS portfolio system. Convert Thai-language daily operational logs into structured activity records.

Input patterns:
1. Structured: an '#EMSLOG' header followed by 'key: value' lines ('project:', 'kpi:', 'type:', 'section15:').
2. Unstructured: natural-language narrative introduced by a date marker (e.g. "#วันที่ 1 ตุลาคม 2567 ...").

For each distinct activity in the log produce an object with:
- date (required): "YYYY-MM-DD". Convert Thai Buddhist-era years to Gregorian (2567 -> 2024, 2568 -> 2025, 2569 -> 2026).
- summary (required): a short title.
- description (required): the free-text body.
- activity_type (required): one of %s.
- section15 (required): one of the nine mandates: %s. Infer the nearest mandate from content when not explicit (e.g. 'Training' -> 15(3) or 15(5)).
- time_range, location, org_unit: optional free text.
- participants: optional array of participant names.
- project_code: optional. The exact code, matching the patterns F-69-..., I-69-..., EC-69-..., R-69-... followed by segmented numbers. Extract from a 'project:' key or from the body text.
- kpi_code: optional (e.g. KPI-18). Extract from a 'kpi:' key.
- region: optional, one of %s.

Return a JSON array of these objects. If the log describes no activity, return [].

<log>%s</log>

Extract activities as JSON array:`

// BuildPrompt renders the extraction prompt for the given log text.
func BuildPrompt(logText string) string {
	return fmt.Sprintf(extractionPromptTemplate,
		quoteList(taxonomy.ActivityTypes),
		quoteList(taxonomy.Section15),
		quoteList(taxonomy.Regions),
		textutil.EscapeXML(logText),
	)
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

// DecodeDrafts parses an engine response into draft records. It tolerates
// markdown code fences and an {"activities": [...]} envelope, but a
// response that fits neither shape fails the whole batch: an arbitrary
// object (a refusal or error payload) or a null body must never read as
// a successful zero-activity parse.
func DecodeDrafts(raw string) ([]models.ActivityDraft, error) {
	text := stripFences(raw)
	if text == "" || text == "null" {
		return nil, fmt.Errorf("extract: empty engine response")
	}

	var drafts []models.ActivityDraft
	err := json.Unmarshal([]byte(text), &drafts)
	if err == nil {
		return drafts, nil
	}

	// Some models wrap the array despite instructions. Trust the envelope
	// only when the activities key is actually present and non-null;
	// unknown keys alone do not make an object an envelope.
	var envelope map[string]json.RawMessage
	if err2 := json.Unmarshal([]byte(text), &envelope); err2 == nil {
		if rawList, ok := envelope["activities"]; ok {
			var wrapped []models.ActivityDraft
			// A nil result means the value was JSON null, not an array.
			if err3 := json.Unmarshal(rawList, &wrapped); err3 == nil && wrapped != nil {
				return wrapped, nil
			}
		}
	}

	return nil, fmt.Errorf("extract: parsing engine response: %w (raw: %s)", err, textutil.Truncate(raw, 200))
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
