package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/ekiara/windows-utils/internal/configfx"
	"github.com/ekiara/windows-utils/internal/domainfx"
	"github.com/ekiara/windows-utils/internal/loggerfx"
	"github.com/ekiara/windows-utils/internal/sqlfx"
	"github.com/ekiara/windows-utils/internal/sysfx"
	"github.com/ekiara/windows-utils/pkg/domain"
)

func main() {
	logger := loggerfx.Logger()

	var (
		v       *viper.Viper
		service *domain.BackupService
		repo    domain.RunRepository
	)

	app := fx.New(
		fx.StartTimeout(15*time.Second),
		fx.StopTimeout(15*time.Second),

		fx.Logger(logger),

		loggerfx.Module,
		configfx.Module,
		sqlfx.Module,
		sysfx.Module,
		domainfx.Module,

		fx.Populate(&v, &service, &repo),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	err := app.Start(startCtx)
	cancel()
	if err != nil {
		logger.WithError(err).Error("Unable to initialize")
		os.Exit(1)
	}

	code := run(v, service, repo, logger)

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := app.Stop(stopCtx); err != nil {
		logger.WithError(err).Error("Unable to shut down cleanly")
	}
	cancel()

	os.Exit(code)
}

func run(v *viper.Viper, service *domain.BackupService, repo domain.RunRepository, logger *logrus.Logger) int {
	ctx := context.Background()

	if n := v.GetInt("list-history"); n > 0 {
		return listHistory(ctx, repo, n, logger)
	}

	dryRun := v.GetBool("dry-run")

	run, err := service.Execute(ctx, !dryRun)
	switch {
	case err == domain.ErrProcessActive:
		logger.Error("Guarded process is running, close it before backing up")
		return 1
	case err == domain.ErrNoVolume:
		logger.Error("No destination volume found, attach a removable drive or pass one explicitly")
		return 1
	case err != nil:
		logger.WithError(err).Error("Backup failed")
		return 1
	}

	if dryRun {
		fmt.Printf("Dry run, would store backup at %s\n", run.Destination)
		return 0
	}

	fmt.Printf("Backup stored at %s\n", run.Destination)

	return 0
}

func listHistory(ctx context.Context, repo domain.RunRepository, limit int, logger *logrus.Logger) int {
	runs, err := repo.FindRecent(ctx, limit)
	if err != nil {
		logger.WithError(err).Error("Unable to read run history")
		return 1
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs (is history.dsn configured?)")
		return 0
	}

	for _, r := range runs {
		fmt.Printf("%s  %-8s  copied=%d skipped=%d  %s\n",
			r.CreatedAt.Format(time.RFC3339), r.ExecStatus,
			r.FilesCopied, r.FilesSkipped, r.Destination)
	}

	return 0
}
