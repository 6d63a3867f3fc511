package domain

import "time"

type execStatus int

const (
	// Run is not recorded yet
	ExecStatusNew execStatus = iota

	// Run recorded, copy not started
	ExecStatusCreated

	// Run finished, copy failed or did not complete
	ExecStatusFailure

	// Run finished, every present source was copied
	ExecStatusSuccess
)

func (s execStatus) String() string {
	switch s {
	case ExecStatusNew:
		return "new"
	case ExecStatusCreated:
		return "created"
	case ExecStatusFailure:
		return "failure"
	case ExecStatusSuccess:
		return "success"
	}

	return "unknown"
}

// Run is a single backup attempt. It only outlives the process when the
// optional run history journal is enabled.
type Run struct {
	Id int64 // identifier for DB

	// volume the backup was written to (e.g. '/media/usb0')
	Volume string

	// timestamped directory the sources were copied into
	Destination string

	ExecStatus execStatus

	FilesCopied  int64
	FilesSkipped int64

	CreatedAt  time.Time
	FinishedAt *time.Time
}
