package repository

import (
	"github.com/farhanadi/resume-matcher/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// GetJobs returns the whole catalog in insertion order. Row position is the
// stable identity the matching engine reports, so the ordering must be
// deterministic.
func (r *JobRepository) GetJobs() ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Order("created_at ASC, id ASC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) CreateJob(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) FindJobByID(id string) (*model.Job, error) {
	var j model.Job
	err := r.db.First(&j, "id = ?", id).Error
	return &j, err
}

func (r *JobRepository) CountJobs() (int64, error) {
	var count int64
	err := r.db.Model(&model.Job{}).Count(&count).Error
	return count, err
}

func (r *JobRepository) ListJobs(page, pageSize int) ([]model.Job, int64, error) {
	var total int64
	if err := r.db.Model(&model.Job{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobs []model.Job
	err := r.db.Order("created_at ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}
