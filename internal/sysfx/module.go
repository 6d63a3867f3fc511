package sysfx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(VolumesConfigProvider),
	fx.Provide(Volumes),
	fx.Provide(Processes),
)
