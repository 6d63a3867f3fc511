package domainfx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(LoadPlan),
	fx.Provide(Copier),
	fx.Provide(BackupService),
)
