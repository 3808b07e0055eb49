// Package classify annotates scan records with suspicion flags. Every
// function here is a pure computation over the snapshot: tunables come in
// through the Classifier and no OS state is consulted, so the report stage
// can rely on flags being reproducible.
package classify

import (
	"strings"

	"github.com/breeze-rmm/hostscan/internal/collectors"
)

// HighUsage is the tri-state result of the throughput check. The proxy
// metric (per-process cumulative I/O bytes) is not readable for every
// process, and an unreadable counter must not masquerade as a clean one.
type HighUsage int

const (
	HighUsageNotComputed HighUsage = iota
	HighUsageBelow
	HighUsageFlagged
)

func (h HighUsage) String() string {
	switch h {
	case HighUsageFlagged:
		return "flagged"
	case HighUsageBelow:
		return "below"
	default:
		return "notComputed"
	}
}

// Flags are the derived annotations for one process or connection.
type Flags struct {
	Listening      bool
	SuspiciousName bool
	MatchedLabel   string // label of the matched denylist signature
	MatchedTerm    string // the denylist term that matched
	HighUsage      HighUsage
}

// Classifier holds the tunables for flag computation.
type Classifier struct {
	Denylist Denylist
	// ThresholdBytes is the high-usage cutoff applied to a process's
	// read+write I/O bytes.
	ThresholdBytes uint64
}

// NewClassifier returns a classifier with the built-in denylist and the
// given threshold.
func NewClassifier(thresholdBytes uint64) *Classifier {
	return &Classifier{
		Denylist:       DefaultDenylist(),
		ThresholdBytes: thresholdBytes,
	}
}

// Process computes the name and usage flags for one process record.
func (c *Classifier) Process(proc collectors.ProcessRecord) Flags {
	flags := Flags{HighUsage: HighUsageNotComputed}

	if sig, ok := c.Denylist.Match(proc.Name); ok {
		flags.SuspiciousName = true
		flags.MatchedTerm = sig.Term
		flags.MatchedLabel = sig.Label
	}

	if proc.IOKnown {
		if proc.IOReadBytes+proc.IOWriteBytes > c.ThresholdBytes {
			flags.HighUsage = HighUsageFlagged
		} else {
			flags.HighUsage = HighUsageBelow
		}
	}

	return flags
}

// Connection computes the full flag set for a connection and its owning
// process. proc may be nil when the owner is unidentified; only the
// listening flag is derivable then.
func (c *Classifier) Connection(conn collectors.ConnectionRecord, proc *collectors.ProcessRecord) Flags {
	var flags Flags
	if proc != nil {
		flags = c.Process(*proc)
	} else {
		flags = Flags{HighUsage: HighUsageNotComputed}
	}
	flags.Listening = IsListening(conn)
	return flags
}

// IsListening reports whether the connection is a server-side socket
// awaiting inbound traffic. TCP has an explicit LISTEN state; a UDP socket
// is connectionless, so one bound without a remote endpoint counts.
func IsListening(conn collectors.ConnectionRecord) bool {
	if strings.HasPrefix(conn.Protocol, "udp") {
		return (conn.State == "" || conn.State == "NONE") &&
			conn.RemoteAddr == "" && conn.RemotePort == 0
	}
	return conn.State == "LISTEN"
}
