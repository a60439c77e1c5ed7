package dto

type MatchJobsRequest struct {
	Text string `json:"text"`
	TopK int    `json:"top_k"`
}

type CompareRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

type CreateJobRequest struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Location    string `json:"location"`
	Experience  string `json:"experience"`
	Category    string `json:"category"`
}

type HealthDTO struct {
	Status      string `json:"status"`
	App         string `json:"app"`
	Environment string `json:"environment"`
	Jobs        int    `json:"jobs"`
}
