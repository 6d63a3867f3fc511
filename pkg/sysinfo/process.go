package sysinfo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// Processes answers process presence queries from the OS process table.
type Processes struct{}

func NewProcesses() *Processes {
	return &Processes{}
}

// ProcessNames returns the names of all currently running processes. A
// process that disappears mid-scan is skipped rather than reported as an
// error; an empty result is a normal outcome.
func (p *Processes) ProcessNames(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query process list")
	}

	names := make([]string, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}

		names = append(names, name)
	}

	return names, nil
}
