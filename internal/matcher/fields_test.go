package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFieldPrecedence(t *testing.T) {
	rec := JobRecord{
		"description":     "fallback text",
		"job_description": "primary text",
	}
	assert.Equal(t, "primary text", resolveField(rec, descriptionKeys))

	delete(rec, "job_description")
	assert.Equal(t, "fallback text", resolveField(rec, descriptionKeys))

	assert.Equal(t, "", resolveField(JobRecord{}, descriptionKeys))
}

func TestResolveFieldSkipsEmptyValues(t *testing.T) {
	rec := JobRecord{
		"job_title": "",
		"title":     "Engineer",
	}
	assert.Equal(t, "Engineer", resolveField(rec, titleKeys))
}

func TestCombineTextFieldOrder(t *testing.T) {
	rec := JobRecord{
		"job_title":       "Backend Engineer",
		"category":        "Engineering",
		"location":        "Berlin",
		"experience":      "5 years",
		"skills_required": "go, postgres",
		"job_description": "Build services",
	}
	assert.Equal(t,
		"Backend Engineer Engineering Berlin 5 years go, postgres Build services",
		combineText(rec))
}

func TestCombineTextSparseRecords(t *testing.T) {
	assert.Equal(t, "Only a description",
		combineText(JobRecord{"job_description": "Only a description"}))
	assert.Equal(t, "Only a title",
		combineText(JobRecord{"job_title": "Only a title"}))
	assert.Equal(t, "", combineText(JobRecord{}))
}

func TestTruncateForEncodeWordBoundary(t *testing.T) {
	short := "a short text"
	assert.Equal(t, short, truncateForEncode(short))

	word := strings.Repeat("x", 10)
	long := strings.Repeat(word+" ", 500) // 5500 runes
	got := truncateForEncode(long)
	assert.LessOrEqual(t, len([]rune(got)), maxEncodeChars)
	assert.False(t, strings.HasSuffix(got, " "))
	assert.True(t, strings.HasSuffix(got, word), "cut lands on a word boundary")
}

func TestTruncateForEncodeNoSpaces(t *testing.T) {
	long := strings.Repeat("x", maxEncodeChars+100)
	got := truncateForEncode(long)
	assert.Len(t, []rune(got), maxEncodeChars)
}

func TestResultDescriptionPassthrough(t *testing.T) {
	rec := JobRecord{"job_description": "Real description"}
	assert.Equal(t, "Real description", resultDescription(rec))
}

func TestResultDescriptionSynthesized(t *testing.T) {
	rec := JobRecord{
		"location":        "Remote",
		"experience":      "3 years",
		"skills_required": "python",
		"category":        "Data",
	}
	assert.Equal(t,
		"Location: Remote | Experience: 3 years | Skills: python | Category: Data",
		resultDescription(rec))

	assert.Equal(t, "Location: Remote",
		resultDescription(JobRecord{"location": "Remote"}))
	assert.Equal(t, "", resultDescription(JobRecord{}))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "abcde", truncateRunes("abcdefgh", 5))
	assert.Equal(t, "日本語", truncateRunes("日本語のテキスト", 3))
}
