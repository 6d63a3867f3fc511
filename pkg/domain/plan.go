package domain

// Plan is the fixed backup plan: what to guard against, what to copy and
// where to put it. It is built once at startup and never mutated.
type Plan struct {
	// process whose presence blocks the backup (it may hold sources open)
	ProcessName string `mapstructure:"process_name"`

	// folder created on the destination volume to hold timestamped runs
	BaseFolder string `mapstructure:"base_folder"`

	// absolute paths of files and folders to copy; missing entries are
	// skipped at copy time
	Sources []string `mapstructure:"sources"`

	// explicit destination volume; empty means "first removable volume"
	PreferredVolume string `mapstructure:"preferred_volume"`
}
