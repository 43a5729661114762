package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var jobTable = tableSpec{
	entity:        "job",
	table:         "jobs",
	columns:       []string{"id", "title", "department", "description", "created_at", "updated_at"},
	searchColumns: []string{"title", "department"},
	sortColumns:   []string{"title", "department", "created_at", "updated_at"},
	defaultSort:   "created_at",
}

type jobRepository struct{}

// NewJobRepository creates a repository over the jobs table of the bound tenant schema
func NewJobRepository() domain.JobRepository {
	return &jobRepository{}
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Description, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepository) Create(ctx context.Context, tx *tenancy.Tx, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	return insertRow(ctx, tx, jobTable, map[string]interface{}{
		"id":          job.ID,
		"title":       job.Title,
		"department":  job.Department,
		"description": job.Description,
		"created_at":  job.CreatedAt,
		"updated_at":  job.UpdatedAt,
	})
}

func (r *jobRepository) GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Job, error) {
	return getByID(ctx, tx, jobTable, id, scanJob)
}

func (r *jobRepository) GetByTitle(ctx context.Context, tx *tenancy.Tx, title string) (*domain.Job, error) {
	return getOne(ctx, tx, jobTable, sq.Eq{"title": title}, scanJob)
}

func (r *jobRepository) List(ctx context.Context, tx *tenancy.Tx, params domain.ListParams) (*domain.ListResult[domain.Job], error) {
	return listRows(ctx, tx, jobTable, params, scanJob)
}

func (r *jobRepository) Update(ctx context.Context, tx *tenancy.Tx, id string, patch domain.Patch) (*domain.Job, error) {
	return updateRow(ctx, tx, jobTable, id, patch, scanJob)
}

func (r *jobRepository) Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error) {
	return deleteRow(ctx, tx, jobTable, id)
}
