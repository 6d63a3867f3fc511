package domainfx

import (
	"github.com/sirupsen/logrus"

	"github.com/ekiara/windows-utils/pkg/domain"
	"github.com/ekiara/windows-utils/pkg/sysinfo"
	"github.com/ekiara/windows-utils/pkg/transfer"
)

func Copier(logger *logrus.Logger) *transfer.Manager {
	return transfer.New(logger)
}

func BackupService(
	logger *logrus.Logger,
	plan domain.Plan,
	processes *sysinfo.Processes,
	volumes *sysinfo.Volumes,
	copier *transfer.Manager,
	repository domain.RunRepository,
) *domain.BackupService {
	return domain.NewBackupService(logger, plan, processes, volumes, copier, repository)
}
