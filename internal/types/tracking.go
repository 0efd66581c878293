package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Bookmark is a job the user saved.
type Bookmark struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id,omitempty"`
	JobID          int       `json:"job_id"`
	JobTitle       string    `json:"job_title,omitempty"`
	JobCompany     string    `json:"job_company,omitempty"`
	JobDescription string    `json:"job_description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (b *Bookmark) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             flexInt  `json:"id"`
		UserID         *flexInt `json:"user_id"`
		UserIDCamel    *flexInt `json:"userId"`
		JobID          *flexInt `json:"job_id"`
		JobIDCamel     *flexInt `json:"jobId"`
		JobTitle       string   `json:"job_title"`
		JobCompany     string   `json:"job_company"`
		JobDescription string   `json:"job_description"`
		CreatedAt      *string  `json:"created_at"`
		CreatedAtCamel *string  `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Bookmark{
		ID:             int(raw.ID),
		UserID:         int(first(raw.UserID, raw.UserIDCamel)),
		JobID:          int(first(raw.JobID, raw.JobIDCamel)),
		JobTitle:       raw.JobTitle,
		JobCompany:     raw.JobCompany,
		JobDescription: raw.JobDescription,
		CreatedAt:      parseTime(first(raw.CreatedAt, raw.CreatedAtCamel)),
	}
	return nil
}

// ApplicationStatus is the stage a job application has reached.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "Applied"
	StatusInterview ApplicationStatus = "Interview"
	StatusOffer     ApplicationStatus = "Offer"
	StatusRejected  ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every valid status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// ParseApplicationStatus parses a status name, case-insensitively.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for _, known := range ApplicationStatuses {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Application tracks a job the user applied to with one of their resumes.
type Application struct {
	ID           int               `json:"id"`
	UserID       int               `json:"user_id,omitempty"`
	JobID        int               `json:"job_id"`
	ResumeID     int               `json:"resume_id"`
	Status       ApplicationStatus `json:"status"`
	AppliedDate  string            `json:"applied_date,omitempty"`
	NextStep     string            `json:"next_step,omitempty"`
	NextStepDate string            `json:"next_step_date,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

func (a *Application) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                flexInt  `json:"id"`
		UserID            *flexInt `json:"user_id"`
		UserIDCamel       *flexInt `json:"userId"`
		JobID             *flexInt `json:"job_id"`
		JobIDCamel        *flexInt `json:"jobId"`
		ResumeID          *flexInt `json:"resume_id"`
		ResumeIDCamel     *flexInt `json:"resumeId"`
		Status            string   `json:"status"`
		AppliedDate       *string  `json:"applied_date"`
		AppliedDateCamel  *string  `json:"appliedDate"`
		NextStep          *string  `json:"next_step"`
		NextStepCamel     *string  `json:"nextStep"`
		NextStepDate      *string  `json:"next_step_date"`
		NextStepDateCamel *string  `json:"nextStepDate"`
		Notes             *string  `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status := ApplicationStatus(raw.Status)
	if parsed, err := ParseApplicationStatus(raw.Status); err == nil {
		status = parsed
	}
	*a = Application{
		ID:           int(raw.ID),
		UserID:       int(first(raw.UserID, raw.UserIDCamel)),
		JobID:        int(first(raw.JobID, raw.JobIDCamel)),
		ResumeID:     int(first(raw.ResumeID, raw.ResumeIDCamel)),
		Status:       status,
		AppliedDate:  first(raw.AppliedDate, raw.AppliedDateCamel),
		NextStep:     first(raw.NextStep, raw.NextStepCamel),
		NextStepDate: first(raw.NextStepDate, raw.NextStepDateCamel),
		Notes:        first(raw.Notes),
	}
	return nil
}

// CreateApplicationRequest is the body of a new application.
type CreateApplicationRequest struct {
	JobID    int `json:"jobId" validate:"required,gt=0"`
	ResumeID int `json:"resumeId" validate:"required,gt=0"`
}

// Validate validates the CreateApplicationRequest.
func (r *CreateApplicationRequest) Validate() error {
	return validateStruct(r)
}

// ApplicationUpdate is a partial application update. Nil fields are not sent.
type ApplicationUpdate struct {
	Status       *ApplicationStatus `json:"status,omitempty" validate:"omitempty,oneof=Applied Interview Offer Rejected"`
	NextStep     *string            `json:"nextStep,omitempty"`
	NextStepDate *string            `json:"nextStepDate,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
}

// Validate validates the ApplicationUpdate.
func (u *ApplicationUpdate) Validate() error {
	if u.Status == nil && u.NextStep == nil && u.NextStepDate == nil && u.Notes == nil {
		return &ValidationError{Field: "application", Tag: "required"}
	}
	return validateStruct(u)
}
