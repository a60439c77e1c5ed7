package matcher

import "strings"

// commonSkills is the fixed dictionary of technical terms matched by
// case-insensitive substring lookup.
var commonSkills = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue", "node", "nodejs",
	"django", "flask", "fastapi", "spring", "express", "mongodb", "mysql", "postgresql", "sql",
	"docker", "kubernetes", "aws", "azure", "gcp", "jenkins", "git", "gitlab", "ci/cd",
	"html", "css", "bootstrap", "tailwind", "redux", "graphql", "rest", "api",
	"machine learning", "ml", "ai", "deep learning", "tensorflow", "pytorch", "pandas", "numpy",
	"agile", "scrum", "devops", "microservices", "cloud", "linux", "unix",
}

// SkillSet is a transient set of normalized lowercase skill tokens.
type SkillSet map[string]struct{}

// ExtractSkills unions two strategies: substring membership against the
// common-skills dictionary, and comma-splitting for explicit skill lists.
// Exact matches only, no stemming or synonyms; precision over recall, since
// this is a secondary signal next to the embedding similarity.
func ExtractSkills(text string) SkillSet {
	skills := make(SkillSet)
	if text == "" {
		return skills
	}
	lower := strings.ToLower(text)
	for _, skill := range commonSkills {
		if strings.Contains(lower, skill) {
			skills[skill] = struct{}{}
		}
	}
	if strings.Contains(text, ",") {
		for _, part := range strings.Split(text, ",") {
			token := strings.ToLower(strings.TrimSpace(part))
			if n := len([]rune(token)); n > 2 && n < 30 {
				skills[token] = struct{}{}
			}
		}
	}
	return skills
}

// skillOverlap scores resume/job skill agreement as Jaccard similarity in
// [0,1]. A job with no listed skills is neutral (0.5) rather than
// penalized, unless the resume lists none either.
func skillOverlap(resume, job SkillSet) float64 {
	if len(resume) == 0 && len(job) == 0 {
		return 0
	}
	if len(job) == 0 {
		return 0.5
	}
	if len(resume) == 0 {
		return 0
	}
	intersection := 0
	for s := range resume {
		if _, ok := job[s]; ok {
			intersection++
		}
	}
	union := len(resume) + len(job) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
