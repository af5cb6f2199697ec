package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ValidationError is returned when caller input is rejected before any scoring runs.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// JobInput is the request to register a job.
type JobInput struct {
	Company            string `json:"company,omitempty"`
	Role               string `json:"role" validate:"required"`
	Text               string `json:"jd_text" validate:"required"`
	RequiredExperience int    `json:"required_experience" validate:"gte=0"`
}

// Validate validates the JobInput using the validator.
func (r *JobInput) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &ValidationError{Message: "job", Cause: err}
	}
	if strings.TrimSpace(r.Text) == "" {
		return &ValidationError{Message: "job description text is empty"}
	}
	return nil
}

// CandidateInput is the request to register a candidate.
type CandidateInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	ResumeText string `json:"resume_text" validate:"required"`
	Experience int    `json:"experience" validate:"gte=0"`
}

// Validate validates the CandidateInput using the validator.
func (r *CandidateInput) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &ValidationError{Message: "candidate", Cause: err}
	}
	if strings.TrimSpace(r.ResumeText) == "" {
		return &ValidationError{Message: "resume text is empty"}
	}
	return nil
}

// OverrideRequest replaces an application's decision by hand.
type OverrideRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	Decision      Decision  `json:"decision" validate:"required"`
	Actor         string    `json:"actor" validate:"required"`
	Reason        string    `json:"reason" validate:"required"`
}

// Validate validates the OverrideRequest using the validator.
func (r *OverrideRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &ValidationError{Message: "override", Cause: err}
	}
	if r.ApplicationID == uuid.Nil {
		return &ValidationError{Message: "application id is required"}
	}
	if !r.Decision.IsValid() {
		return &ValidationError{Message: fmt.Sprintf("unknown decision %q", r.Decision)}
	}
	return nil
}
