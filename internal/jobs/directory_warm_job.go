package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scm-gateway/internal/enrollment"
)

// DirectoryWarmJob keeps the lookup cache of this replica populated so
// enrollments do not wait on the account metadata endpoints.
type DirectoryWarmJob struct {
	directory enrollment.Directory
	interval  time.Duration
	logger    *slog.Logger
}

func NewDirectoryWarmJob(directory enrollment.Directory, interval time.Duration, logger *slog.Logger) *DirectoryWarmJob {
	return &DirectoryWarmJob{
		directory: directory,
		interval:  interval,
		logger:    logger,
	}
}

func (j *DirectoryWarmJob) Name() string {
	return "directory_warm"
}

func (j *DirectoryWarmJob) RequiresLeadership() bool {
	return false
}

func (j *DirectoryWarmJob) Interval() time.Duration {
	return j.interval
}

func (j *DirectoryWarmJob) Run(ctx context.Context) error {
	if j.interval <= 0 {
		return fmt.Errorf("non-positive ticker interval: %s", j.interval)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	if err := j.warm(ctx); err != nil {
		j.logger.Warn("initial lookup cache warm up failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := j.warm(ctx); err != nil {
				j.logger.Warn(fmt.Sprintf("lookup cache warm up failed, trying again in %s", j.interval), "error", err)
			}
		}
	}
}

func (j *DirectoryWarmJob) warm(ctx context.Context) error {
	if _, err := j.directory.Organizations(ctx); err != nil {
		return fmt.Errorf("organizations: %w", err)
	}
	if _, err := j.directory.Profiles(ctx); err != nil {
		return fmt.Errorf("ssl profiles: %w", err)
	}
	if _, err := j.directory.CustomFields(ctx); err != nil {
		return fmt.Errorf("custom fields: %w", err)
	}
	j.logger.Debug("lookup cache warmed")
	return nil
}
