package service

import (
	"context"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type JobService struct {
	transactor tenancy.Transactor
	repo       domain.JobRepository
	logger     logger.Logger
}

func NewJobService(transactor tenancy.Transactor, repo domain.JobRepository, logger logger.Logger) *JobService {
	return &JobService{
		transactor: transactor,
		repo:       repo,
		logger:     logger,
	}
}

func (s *JobService) CreateJob(ctx context.Context, schema string, req *domain.CreateJobRequest) (*domain.Job, error) {
	job, err := req.Validate()
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithTenantTransaction(ctx, schema, func(ctx context.Context, tx *tenancy.Tx) error {
		return s.repo.Create(ctx, tx, job)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to create job", err, nil)
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, schema string, id string) (*domain.Job, error) {
	job, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Job, error) {
		return s.repo.GetByID(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get job", err, map[string]interface{}{"job_id": id})
		return nil, err
	}
	if job == nil {
		return nil, &domain.ErrNotFound{Entity: "job", ID: id}
	}
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[domain.Job], error) {
	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.ListResult[domain.Job], error) {
		return s.repo.List(ctx, tx, params)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to list jobs", err, nil)
		return nil, err
	}
	return result, nil
}

func (s *JobService) UpdateJob(ctx context.Context, schema string, req *domain.UpdateJobRequest) (*domain.Job, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	job, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Job, error) {
		return s.repo.Update(ctx, tx, req.ID, patch)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update job", err, map[string]interface{}{"job_id": req.ID})
		return nil, err
	}
	if job == nil {
		return nil, &domain.ErrNotFound{Entity: "job", ID: req.ID}
	}
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, schema string, id string) (bool, error) {
	deleted, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (bool, error) {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to delete job", err, map[string]interface{}{"job_id": id})
		return false, err
	}
	return deleted, nil
}
