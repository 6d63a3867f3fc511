package domain

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ekiara/windows-utils/pkg/appcontext"
)

// TimestampLayout names destination directories. One run per second is
// enough to keep them unique.
const TimestampLayout = "20060102_150405"

var (
	// Guarded process is active, nothing was written.
	ErrProcessActive = errors.New("guarded process is active")

	// No destination volume could be resolved, nothing was written.
	ErrNoVolume = errors.New("no destination volume found")
)

type RunRepository interface {
	Create(context.Context, Run) (Run, error)
	Update(context.Context, Run) error
	FindRecent(context.Context, int) ([]Run, error)
}

type processList interface {
	ProcessNames(ctx context.Context) ([]string, error)
}

type volumeLister interface {
	ListVolumes(ctx context.Context) ([]Volume, error)
}

type fileCopier interface {
	CopyAll(ctx context.Context, sources []string, destDir string, proceed bool) (CopyResult, error)
}

// BackupService runs the backup sequence: guard against the configured
// process, resolve the destination volume, build the timestamped destination
// path and copy the plan's sources there. Strictly linear, first failure is
// terminal, no retries.
type BackupService struct {
	logger logrus.FieldLogger

	plan Plan

	processes processList
	volumes   volumeLister
	copier    fileCopier
	repo      RunRepository

	now func() time.Time
}

func NewBackupService(
	logger logrus.FieldLogger,
	plan Plan,
	processes processList,
	volumes volumeLister,
	copier fileCopier,
	repo RunRepository,
) *BackupService {
	return &BackupService{
		logger: logger,

		plan: plan,

		processes: processes,
		volumes:   volumes,
		copier:    copier,
		repo:      repo,

		now: time.Now,
	}
}

// IsGuardedProcessActive reports whether the plan's guarded process is
// currently running. Names are compared case-insensitively; an empty process
// table is a normal false, not an error.
func (s *BackupService) IsGuardedProcessActive(ctx context.Context) (bool, error) {
	names, err := s.processes.ProcessNames(ctx)
	if err != nil {
		return false, err
	}

	for _, name := range names {
		if strings.EqualFold(name, s.plan.ProcessName) {
			return true, nil
		}
	}

	return false, nil
}

// FindVolume resolves the destination volume. A preferred identifier wins if
// it is currently attached; otherwise the first removable volume in
// enumeration order is taken. Returns false when nothing is resolvable,
// which is a normal outcome the caller decides on.
func (s *BackupService) FindVolume(ctx context.Context, preferred string) (string, bool, error) {
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	volumes, err := s.volumes.ListVolumes(ctx)
	if err != nil {
		return "", false, err
	}

	if preferred != "" {
		for _, v := range volumes {
			if v.Id == preferred {
				return v.Id, true, nil
			}
		}

		logger.WithField("volume", preferred).Warn("Preferred volume is not attached, falling back to scanning")
	}

	// Enumeration order is platform defined: with several removable
	// volumes attached the first one wins. Pass an explicit volume for
	// determinism.
	for _, v := range volumes {
		if v.Removable {
			return v.Id, true, nil
		}
	}

	logger.Warn("No removable volume attached")

	return "", false, nil
}

// Execute performs one backup run. With proceed=false the gates and the
// destination path computation still happen, but the copier refuses to touch
// the filesystem and the run is not journaled.
func (s *BackupService) Execute(ctx context.Context, proceed bool) (Run, error) {
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	run := Run{ExecStatus: ExecStatusNew, CreatedAt: s.now()}

	active, err := s.IsGuardedProcessActive(ctx)
	if err != nil {
		return run, err
	}
	if active {
		return run, ErrProcessActive
	}

	volume, ok, err := s.FindVolume(ctx, s.plan.PreferredVolume)
	if err != nil {
		return run, err
	}
	if !ok {
		return run, ErrNoVolume
	}

	run.Volume = volume
	run.Destination = filepath.Join(volume, s.plan.BaseFolder, run.CreatedAt.Format(TimestampLayout))

	ctx = appcontext.WithVolume(ctx, volume)
	logger = appcontext.LoggerFromContext(s.logger, ctx)

	if !proceed {
		logger.WithField("destination", run.Destination).Info("Not proceeding, nothing will be copied")

		_, err = s.copier.CopyAll(ctx, s.plan.Sources, run.Destination, false)

		return run, err
	}

	run.ExecStatus = ExecStatusCreated
	if created, err := s.repo.Create(ctx, run); err != nil {
		logger.WithError(err).Warn("Unable to journal backup run")
	} else {
		run = created
		ctx = appcontext.WithRunId(ctx, run.Id)
		logger = appcontext.LoggerFromContext(s.logger, ctx)
	}

	logger.WithField("destination", run.Destination).Info("Copying sources")

	res, err := s.copier.CopyAll(ctx, s.plan.Sources, run.Destination, true)
	run.FilesCopied = int64(res.Copied)
	run.FilesSkipped = int64(res.Skipped)

	if err != nil || !res.Done {
		s.finishRun(ctx, &run, ExecStatusFailure)

		if err == nil {
			err = errors.New("copy did not complete")
		}

		return run, err
	}

	s.finishRun(ctx, &run, ExecStatusSuccess)

	logger.WithFields(logrus.Fields{
		"destination": run.Destination,
		"copied":      res.Copied,
		"skipped":     res.Skipped,
	}).Info("Backup finished")

	return run, nil
}

func (s *BackupService) finishRun(ctx context.Context, run *Run, status execStatus) {
	now := s.now()

	run.ExecStatus = status
	run.FinishedAt = &now

	// journal failures never fail the backup itself
	if err := s.repo.Update(ctx, *run); err != nil {
		appcontext.LoggerFromContext(s.logger, ctx).WithError(err).Warn("Unable to journal backup run result")
	}
}
