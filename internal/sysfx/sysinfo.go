package sysfx

import (
	"github.com/spf13/viper"

	"github.com/ekiara/windows-utils/pkg/sysinfo"
)

const (
	ConfigRemovablePrefixes = "volumes.removable_prefixes"
)

type VolumesConfig struct {
	RemovablePrefixes []string
}

func VolumesConfigProvider(v *viper.Viper) *VolumesConfig {
	prefixes := v.GetStringSlice(ConfigRemovablePrefixes)
	if len(prefixes) == 0 {
		prefixes = []string{"/media", "/run/media", "/Volumes"}
	}

	return &VolumesConfig{
		RemovablePrefixes: prefixes,
	}
}

func Volumes(config *VolumesConfig) *sysinfo.Volumes {
	return sysinfo.NewVolumes(config.RemovablePrefixes)
}

func Processes() *sysinfo.Processes {
	return sysinfo.NewProcesses()
}
