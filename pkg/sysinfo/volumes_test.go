package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRemovableMountpoint(t *testing.T) {
	prefixes := []string{"/media", "/run/media", "/Volumes"}

	cases := []struct {
		mountpoint string
		removable  bool
	}{
		{"/media/usb0", true},
		{"/run/media/user/STICK", true},
		{"/Volumes/Backup", true},
		{"/", false},
		{"/media", false},
		{"/mediafiles/library", false},
		{"/mnt/data", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.removable, isRemovableMountpoint(c.mountpoint, prefixes), c.mountpoint)
	}
}

func TestIsRemovableMountpoint_NoPrefixes(t *testing.T) {
	assert.False(t, isRemovableMountpoint("/media/usb0", nil))
}
