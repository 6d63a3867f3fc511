package domainfx

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ekiara/windows-utils/pkg/domain"
)

const (
	ConfigVolume = "volume"
)

// LoadPlan builds the backup plan: hard defaults for the Outlook file set
// under the user's home, overridable from the 'backup' config key. The
// destination volume comes from the --volume flag or the first positional
// argument.
func LoadPlan(v *viper.Viper, flagSet *pflag.FlagSet) (domain.Plan, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return domain.Plan{}, errors.Wrap(err, "Unable to resolve home directory")
	}

	plan := domain.Plan{
		ProcessName: "OUTLOOK.EXE",
		BaseFolder:  "OutlookBackups",
		Sources: []string{
			filepath.Join(home, "Documents", "Outlook Files", "outlook.pst"),
			filepath.Join(home, "Documents", "contacts.docx"),
			filepath.Join(home, "Documents", "mail-notes.docx"),
			filepath.Join(home, "AppData", "Roaming", "Microsoft", "Signatures"),
		},
	}

	if err := v.UnmarshalKey("backup", &plan); err != nil {
		return domain.Plan{}, errors.Wrap(err, "Unable to unmarshal backup plan")
	}

	if volume := v.GetString(ConfigVolume); volume != "" {
		plan.PreferredVolume = volume
	} else if flagSet.NArg() > 0 {
		plan.PreferredVolume = flagSet.Arg(0)
	}

	return plan, nil
}
