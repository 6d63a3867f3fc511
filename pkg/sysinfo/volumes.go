package sysinfo

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/ekiara/windows-utils/pkg/domain"
)

// Volumes enumerates attached logical volumes. The OS does not expose a
// portable "removable media" flag, so classification is a mountpoint prefix
// heuristic driven by configuration (/media, /run/media, /Volumes by
// default). Enumeration order is whatever the OS reports, it is not stable
// across attachments or platforms.
type Volumes struct {
	removablePrefixes []string
}

func NewVolumes(removablePrefixes []string) *Volumes {
	return &Volumes{
		removablePrefixes: removablePrefixes,
	}
}

func (l *Volumes) ListVolumes(ctx context.Context) ([]domain.Volume, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, errors.Wrap(err, "unable to enumerate volumes")
	}

	volumes := make([]domain.Volume, 0, len(parts))
	for _, part := range parts {
		volumes = append(volumes, domain.Volume{
			Id:        part.Mountpoint,
			Removable: isRemovableMountpoint(part.Mountpoint, l.removablePrefixes),
		})
	}

	return volumes, nil
}

func isRemovableMountpoint(mountpoint string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(mountpoint, prefix+"/") {
			return true
		}
	}

	return false
}
