package report

import (
	"sort"
	"strings"

	"github.com/breeze-rmm/hostscan/internal/classify"
	"github.com/breeze-rmm/hostscan/internal/collectors"
)

// ProcessGroup is one bucket of the connection partition: all connections
// owned by a single pid. Process is nil for the unidentified bucket, which
// collects every connection whose owner could not be resolved.
type ProcessGroup struct {
	Pid         int32
	Name        string // empty for the unidentified bucket
	Process     *collectors.ProcessRecord
	Connections []collectors.ConnectionRecord
}

// Unidentified reports whether this group holds ownerless connections.
func (g *ProcessGroup) Unidentified() bool {
	return g.Pid == 0
}

// GroupByProcess partitions the snapshot's connections by owning pid. Every
// connection lands in exactly one group. Groups are ordered by process name
// then pid, with the unidentified bucket last, so reports are deterministic.
func GroupByProcess(snap *collectors.Snapshot) []*ProcessGroup {
	byPid := make(map[int32]*ProcessGroup)
	var order []*ProcessGroup

	for _, conn := range snap.Connections {
		group, ok := byPid[conn.Pid]
		if !ok {
			group = &ProcessGroup{Pid: conn.Pid}
			if conn.Pid > 0 {
				if proc, found := snap.ProcessByPid(conn.Pid); found {
					group.Process = &proc
					group.Name = proc.Name
				}
				if group.Name == "" {
					// Owner resolved at connection time but the
					// process has since left the process table.
					group.Name = conn.ProcessName
				}
			}
			byPid[conn.Pid] = group
			order = append(order, group)
		}
		group.Connections = append(group.Connections, conn)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Unidentified() != b.Unidentified() {
			return !a.Unidentified()
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.Pid < b.Pid
	})

	return order
}

// ListeningView filters the snapshot's connections down to listening
// sockets, sorted by local port. A connection appears here in addition to
// its process group, not instead of it.
func ListeningView(snap *collectors.Snapshot) []collectors.ConnectionRecord {
	var listening []collectors.ConnectionRecord
	for _, conn := range snap.Connections {
		if classify.IsListening(conn) {
			listening = append(listening, conn)
		}
	}

	sort.SliceStable(listening, func(i, j int) bool {
		return listening[i].LocalPort < listening[j].LocalPort
	})

	return listening
}

// Finding is one row of the Process Analysis section: a process that
// triggered at least one classifier flag, deduplicated by pid.
type Finding struct {
	Process collectors.ProcessRecord
	Flags   classify.Flags
}

// Findings computes the flagged-process summary. Only processes with a
// suspicious name or high usage appear; each pid appears at most once.
func Findings(snap *collectors.Snapshot, classifier *classify.Classifier) []Finding {
	var findings []Finding
	seen := make(map[int32]bool)

	for _, proc := range snap.Processes {
		if seen[proc.Pid] {
			continue
		}
		seen[proc.Pid] = true

		flags := classifier.Process(proc)
		if flags.SuspiciousName || flags.HighUsage == classify.HighUsageFlagged {
			findings = append(findings, Finding{Process: proc, Flags: flags})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i].Process, findings[j].Process
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.Pid < b.Pid
	})

	return findings
}
