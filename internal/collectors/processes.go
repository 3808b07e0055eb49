package collectors

import (
	"github.com/shirou/gopsutil/v3/process"
)

// queryProcesses enumerates all running processes. Individual fields that
// the OS refuses to reveal (name, owner, I/O counters) degrade to their
// zero values; the record itself is always kept so the report can show it
// as unknown rather than dropping it.
func queryProcesses() ([]ProcessRecord, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	records := make([]ProcessRecord, 0, len(procs))
	degraded := 0
	for _, p := range procs {
		rec := ProcessRecord{Pid: p.Pid}

		name, err := p.Name()
		if err != nil {
			// Process likely exited mid-scan or access was denied.
			degraded++
		} else {
			rec.Name = name
		}

		if username, err := p.Username(); err == nil {
			rec.Username = username
		}

		if io, err := p.IOCounters(); err == nil && io != nil {
			rec.IOReadBytes = io.ReadBytes
			rec.IOWriteBytes = io.WriteBytes
			rec.IOKnown = true
		}

		records = append(records, rec)
	}

	if degraded > 0 {
		log.Debug("process enumeration degraded", "unnamed", degraded, "total", len(procs))
	}

	return records, nil
}
