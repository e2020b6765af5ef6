package resumes

import "time"

// Record is the audit row written after a generated PDF is stored.
type Record struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	ResumeLink string    `json:"resumeLink"`
	UserID     string    `json:"userId"`
}
