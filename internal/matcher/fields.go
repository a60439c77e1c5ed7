package matcher

import "strings"

// JobRecord is a loosely-keyed job row as delivered by the catalog or an
// upstream loader. Datasets name the same concept differently, so every
// lookup goes through an ordered synonym table.
type JobRecord map[string]string

// Synonym precedence per logical field. The order is a contract: downstream
// scoring depends on which key wins.
var (
	descriptionKeys = []string{"job_description", "description", "job_desc"}
	titleKeys       = []string{"job_title", "position_title", "title"}
	skillKeys       = []string{"skills_required", "job_skill_set", "skills", "required_skills"}
	companyKeys     = []string{"company_name", "company", "employer"}
	resultTitleKeys = []string{"position_title", "job_title", "title"}
)

func resolveField(rec JobRecord, keys []string) string {
	for _, k := range keys {
		if v := rec[k]; v != "" {
			return v
		}
	}
	return ""
}

// combineText builds the single descriptive string a job is embedded from.
// The most discriminative fields (title, skills) come before the free-text
// description, which helps short or sparse records.
func combineText(rec JobRecord) string {
	desc := resolveField(rec, descriptionKeys)
	title := resolveField(rec, titleKeys)
	skills := resolveField(rec, skillKeys)

	parts := []string{title, rec["category"], rec["location"], rec["experience"], skills, desc}
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			fields = append(fields, p)
		}
	}
	if combined := strings.TrimSpace(strings.Join(fields, " ")); combined != "" {
		return combined
	}
	if desc != "" {
		return desc
	}
	return title
}

// maxEncodeChars bounds encode latency and keeps inputs inside the
// embedding model's effective context window (~4 chars per token).
const maxEncodeChars = 4000

// truncateForEncode cuts text at the nearest word boundary before
// maxEncodeChars, hard-truncating when the prefix has no space at all.
func truncateForEncode(text string) string {
	runes := []rune(text)
	if len(runes) <= maxEncodeChars {
		return text
	}
	prefix := string(runes[:maxEncodeChars])
	if i := strings.LastIndex(prefix, " "); i > 0 {
		return prefix[:i]
	}
	return prefix
}

// resultDescription resolves the description shown in a match result. Rows
// without a free-text description get a labeled summary built from whatever
// else is present.
func resultDescription(rec JobRecord) string {
	if desc := resolveField(rec, descriptionKeys); desc != "" {
		return desc
	}
	var parts []string
	if v := rec["location"]; v != "" {
		parts = append(parts, "Location: "+v)
	}
	if v := rec["experience"]; v != "" {
		parts = append(parts, "Experience: "+v)
	}
	if v := rec["skills_required"]; v != "" {
		parts = append(parts, "Skills: "+v)
	}
	if v := rec["category"]; v != "" {
		parts = append(parts, "Category: "+v)
	}
	return strings.Join(parts, " | ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
