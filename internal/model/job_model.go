package model

import (
	"time"

	"github.com/farhanadi/resume-matcher/internal/matcher"
	"github.com/google/uuid"
)

// Job is a catalog row. Only source fields are stored; derived embeddings
// live in the matching engine's in-process index, never in the database.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Company     string    `gorm:"type:varchar(255)" json:"company"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Skills      string    `gorm:"type:text" json:"skills"` // comma-separated
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	Experience  string    `gorm:"type:varchar(255)" json:"experience"`
	Category    string    `gorm:"type:varchar(255)" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// ToRecord flattens the row into the loosely-keyed record the matching
// engine consumes. Field naming is resolved once, here at the boundary.
func (j *Job) ToRecord() matcher.JobRecord {
	return matcher.JobRecord{
		"company_name":    j.Company,
		"job_title":       j.Title,
		"job_description": j.Description,
		"skills_required": j.Skills,
		"location":        j.Location,
		"experience":      j.Experience,
		"category":        j.Category,
	}
}
