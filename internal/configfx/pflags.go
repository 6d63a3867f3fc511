package configfx

import (
	"os"

	"github.com/spf13/pflag"
)

func PFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

	// Config file flag
	fs.StringP("config", "c", "", "Config file")

	// Destination volume; the first positional argument is accepted too
	fs.StringP("volume", "v", "", "Destination volume (default: first removable volume)")

	fs.Bool("dry-run", false, "Run all checks and print the destination without copying")
	fs.Int("list-history", 0, "Print the N most recent recorded runs and exit")

	// ExitOnError: a parse failure prints usage and terminates
	_ = fs.Parse(os.Args[1:])

	return fs
}
