package performance

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// The model is instructed to answer with a single JSON object, but in
// practice replies arrive fenced in markdown, wrapped in commentary,
// truncated at the token limit, or as plain prose. Extraction is an ordered
// cascade of increasingly permissive strategies; parse failure is never an
// error, only an absence of structured fields.

var (
	fenceOpenRe  = regexp.MustCompile("^```(?:json)?[ \t]*\n?")
	fenceCloseRe = regexp.MustCompile("\n?```\\s*$")

	trailingCommaObjRe = regexp.MustCompile(`,\s*}`)
	trailingCommaArrRe = regexp.MustCompile(`,\s*]`)

	recommendationSectionRe = regexp.MustCompile(`(?si)\*\*(?:Rekomendasi|Recommendation)\*\*\s*\n+(.+?)(?:\n\s*\*\*|\z)`)
	motivationSectionRe     = regexp.MustCompile(`(?si)\*\*(?:Motivasi|Motivation)\*\*\s*\n+(.+?)(?:\n\s*\*\*|\z)`)
)

// ExtractInsights pulls the recommendation and motivation fields out of raw
// model output. Missing or empty fields come back nil; the caller stores the
// raw text regardless, so a full miss degrades rather than fails.
//
// The lenient treatment of an absent recommendations/motivation field is a
// deliberate choice: model non-compliance turns into omission, never into a
// generation failure.
func ExtractInsights(raw string) (recommendation, motivation *string) {
	recommendation, motivation = parseInsightJSON(raw)
	if recommendation == nil && motivation == nil {
		recommendation, motivation = parseInsightSections(raw)
	}
	return recommendation, motivation
}

// parseInsightJSON is the strict-with-repair strategy: strip fences, slice
// to the outermost brace span, drop trailing commas, decode. A response cut
// off before the closing brace gets one retry with a synthetic "}".
func parseInsightJSON(raw string) (recommendation, motivation *string) {
	candidate := extractJSONCandidate(raw)
	if candidate == "" {
		return nil, nil
	}
	candidate = stripTrailingCommas(candidate)

	obj := decodeObject(candidate)
	if obj == nil && !strings.HasSuffix(strings.TrimSpace(candidate), "}") {
		obj = decodeObject(stripTrailingCommas(candidate + "}"))
	}
	if obj == nil {
		return nil, nil
	}

	if rec := joinStringList(obj["recommendations"]); rec != "" {
		recommendation = &rec
	}
	if mot, ok := obj["motivation"].(string); ok && strings.TrimSpace(mot) != "" {
		motivation = &mot
	}
	return recommendation, motivation
}

// parseInsightSections recovers free-text answers that ignored the JSON
// instruction: bolded "Rekomendasi"/"Motivasi" headings followed by a block
// of text up to the next bold heading or end of input.
func parseInsightSections(raw string) (recommendation, motivation *string) {
	if m := recommendationSectionRe.FindStringSubmatch(raw); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			recommendation = &text
		}
	}
	if m := motivationSectionRe.FindStringSubmatch(raw); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			motivation = &text
		}
	}
	return recommendation, motivation
}

// RepairForDisplay re-applies the same repair chain at the read boundary:
// stored raw text renders as a decoded object whenever it was almost-valid
// JSON, and as the original string otherwise. Records written before
// reconciliation existed flow through here too, so it has to stand alone.
func RepairForDisplay(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	candidate := extractJSONCandidate(normalized)
	if candidate == "" {
		return raw
	}
	candidate = stripTrailingCommas(candidate)

	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err == nil {
		return value
	}
	if !strings.HasSuffix(strings.TrimSpace(candidate), "}") {
		if err := json.Unmarshal([]byte(stripTrailingCommas(candidate+"}")), &value); err == nil {
			return value
		}
	}
	return raw
}

// extractJSONCandidate strips a markdown fence and slices the text to the
// first "{" through the last "}", discarding any preamble or trailing
// commentary. Returns "" when no object span is present.
func extractJSONCandidate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = fenceOpenRe.ReplaceAllString(trimmed, "")
	trimmed = fenceCloseRe.ReplaceAllString(trimmed, "")
	trimmed = strings.TrimSpace(trimmed)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start != -1 && end > start {
		return trimmed[start : end+1]
	}
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	return ""
}

// stripTrailingCommas removes the ",}" / ",]" artifact models commonly emit.
func stripTrailingCommas(s string) string {
	s = trailingCommaObjRe.ReplaceAllString(s, "}")
	s = trailingCommaArrRe.ReplaceAllString(s, "]")
	return s
}

func decodeObject(candidate string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil
	}
	return obj
}

// joinStringList renders a decoded recommendations field as newline-joined
// text. Lists join entry by entry; a bare string passes through; any other
// non-nil value is stringified.
func joinStringList(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		var entries []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				entries = append(entries, s)
			}
		}
		return strings.Join(entries, "\n")
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
