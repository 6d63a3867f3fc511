package domain

// Volume is an attached logical volume as seen by the volume lister.
type Volume struct {
	// identifier usable as a path prefix (mountpoint, drive designation)
	Id string

	// whether the OS classifies the backing media as removable
	Removable bool
}

// CopyResult summarizes a copier invocation. Done is true only if the
// destination was prepared and every present source was processed without an
// I/O failure.
type CopyResult struct {
	Done    bool
	Copied  int
	Skipped int
}
