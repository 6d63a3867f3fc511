package transfer

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ekiara/windows-utils/pkg/appcontext"
	"github.com/ekiara/windows-utils/pkg/domain"
)

// Manager copies plan sources onto the destination volume.
type Manager struct {
	logger logrus.FieldLogger
}

func New(logger logrus.FieldLogger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// CopyAll prepares destDir and copies every existing source into it under
// the source's own base name, overwriting items of the same name. Missing
// sources are skipped with a warning and do not abort the remaining copies.
// An I/O failure aborts the loop; items copied before the failing one are
// left in place, there is no rollback.
//
// With proceed=false nothing is touched and the result reports Done=false.
func (m *Manager) CopyAll(ctx context.Context, sources []string, destDir string, proceed bool) (domain.CopyResult, error) {
	var res domain.CopyResult

	if !proceed {
		return res, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return res, errors.Wrap(err, "unable to create destination directory")
	}

	for _, src := range sources {
		logger := appcontext.LoggerFromContext(m.logger, appcontext.WithSource(ctx, src))

		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			logger.Warn("Source does not exist, skipping")
			res.Skipped++
			continue
		}
		if err != nil {
			return res, errors.Wrapf(err, "unable to stat %s", src)
		}

		dst := filepath.Join(destDir, filepath.Base(src))

		if info.IsDir() {
			err = copyDir(src, dst, info)
		} else {
			err = copyFile(src, dst, info)
		}
		if err != nil {
			return res, errors.Wrapf(err, "unable to copy %s", src)
		}

		logger.Debug("Copied")
		res.Copied++
	}

	res.Done = true

	return res, nil
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err = out.Close(); err != nil {
		return err
	}

	return os.Chmod(dst, info.Mode())
}

func copyDir(src, dst string, info os.FileInfo) error {
	// a leftover item of the same name is replaced wholesale
	if _, err := os.Stat(dst); err == nil {
		if err = os.RemoveAll(dst); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(dst, info.Mode()); err != nil {
		return err
	}

	entries, err := ioutil.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err = copyDir(srcPath, dstPath, entry); err != nil {
				return err
			}
			continue
		}

		if entry.Mode()&os.ModeSymlink != 0 {
			continue
		}

		if err = copyFile(srcPath, dstPath, entry); err != nil {
			return err
		}
	}

	return nil
}
