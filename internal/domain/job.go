package domain

import (
	"context"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_job_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain JobRepository
//go:generate mockgen -destination mocks/mock_job_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain JobService

// AdministratorJobTitle is the job created for every tenant's first user
const AdministratorJobTitle = "Administrator"

// Job is a position employees are hired into
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateJobRequest struct {
	Title       string `json:"title"`
	Department  string `json:"department,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r *CreateJobRequest) Validate() (*Job, error) {
	title, err := requireString(r.Title, "title", 255)
	if err != nil {
		return nil, err
	}
	department, err := optionalString(r.Department, "department", 100)
	if err != nil {
		return nil, err
	}
	description, err := optionalString(r.Description, "description", 2000)
	if err != nil {
		return nil, err
	}
	return &Job{Title: title, Department: department, Description: description}, nil
}

type UpdateJobRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Department  *string `json:"department,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateJobRequest) Validate() (Patch, error) {
	var err error
	if r.ID, err = requireUUID(r.ID, "id"); err != nil {
		return nil, err
	}

	patch := Patch{}
	if r.Title != nil {
		v, err := requireString(*r.Title, "title", 255)
		if err != nil {
			return nil, err
		}
		patch["title"] = v
	}
	if r.Department != nil {
		v, err := optionalString(*r.Department, "department", 100)
		if err != nil {
			return nil, err
		}
		patch["department"] = v
	}
	if r.Description != nil {
		v, err := optionalString(*r.Description, "description", 2000)
		if err != nil {
			return nil, err
		}
		patch["description"] = v
	}
	if len(patch) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return patch, nil
}

// JobRepository queries the jobs table of the schema tx is bound to
type JobRepository interface {
	Create(ctx context.Context, tx *tenancy.Tx, job *Job) error
	GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*Job, error)
	GetByTitle(ctx context.Context, tx *tenancy.Tx, title string) (*Job, error)
	List(ctx context.Context, tx *tenancy.Tx, params ListParams) (*ListResult[Job], error)
	Update(ctx context.Context, tx *tenancy.Tx, id string, patch Patch) (*Job, error)
	Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error)
}

type JobService interface {
	CreateJob(ctx context.Context, schema string, req *CreateJobRequest) (*Job, error)
	GetJob(ctx context.Context, schema string, id string) (*Job, error)
	ListJobs(ctx context.Context, schema string, params ListParams) (*ListResult[Job], error)
	UpdateJob(ctx context.Context, schema string, req *UpdateJobRequest) (*Job, error)
	DeleteJob(ctx context.Context, schema string, id string) (bool, error)
}
