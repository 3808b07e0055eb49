package collectors

import (
	"fmt"
	"time"

	"github.com/breeze-rmm/hostscan/internal/logging"
	"github.com/breeze-rmm/hostscan/internal/privilege"
)

var log = logging.L("collector")

// CollectionError reports that one of the OS enumeration queries failed
// entirely, as opposed to individual records being unreadable. It is fatal:
// the scan aborts and the process exits non-zero.
type CollectionError struct {
	Stage string // "processes" or "connections"
	Err   error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collect %s: %v", e.Stage, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// Collector runs the read-only OS queries that make up a scan. The query
// functions default to the live gopsutil-backed implementations; tests
// substitute their own.
type Collector struct {
	queryProcesses   func() ([]ProcessRecord, error)
	queryConnections func() ([]ConnectionRecord, error)
	queryCounters    func() (*InterfaceCounters, error)
	queryHost        func() HostInfo
	elevated         func() bool
}

// New returns a Collector backed by live OS queries.
func New() *Collector {
	return &Collector{
		queryProcesses:   queryProcesses,
		queryConnections: queryConnections,
		queryCounters:    queryCounters,
		queryHost:        queryHost,
		elevated:         privilege.IsElevated,
	}
}

// Collect performs one scan and returns the snapshot.
//
// The process and connection enumerations are load-bearing: if either fails
// wholesale a *CollectionError is returned and no snapshot is produced.
// Host metadata and interface counters degrade instead, the report renders
// those sections as unavailable.
func (c *Collector) Collect() (*Snapshot, error) {
	start := time.Now()

	procs, err := c.queryProcesses()
	if err != nil {
		return nil, &CollectionError{Stage: "processes", Err: err}
	}

	conns, err := c.queryConnections()
	if err != nil {
		return nil, &CollectionError{Stage: "connections", Err: err}
	}

	counters, err := c.queryCounters()
	if err != nil {
		log.Warn("interface counters unavailable", logging.KeyError, err)
		counters = nil
	}

	snapshot := &Snapshot{
		Timestamp:   start,
		Host:        c.queryHost(),
		Processes:   procs,
		Connections: conns,
		Counters:    counters,
		Elevated:    c.elevated(),
	}

	log.Info("scan complete",
		"processes", len(procs),
		"connections", len(conns),
		logging.KeyDurationMs, time.Since(start).Milliseconds(),
	)

	return snapshot, nil
}
