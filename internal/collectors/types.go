package collectors

import "time"

// ProcessRecord describes one running process at scan time.
type ProcessRecord struct {
	Pid      int32  `json:"pid"`
	Name     string `json:"name"`     // empty if unavailable
	Username string `json:"username"` // empty if unavailable

	// Cumulative I/O counters, the proxy metric for per-process network
	// usage where the OS exposes no per-process byte attribution.
	// IOKnown is false when the counters could not be read (usually a
	// permission restriction); the high-usage flag is then not computed.
	IOReadBytes  uint64 `json:"ioReadBytes"`
	IOWriteBytes uint64 `json:"ioWriteBytes"`
	IOKnown      bool   `json:"ioKnown"`
}

// ConnectionRecord describes one inet socket at scan time.
type ConnectionRecord struct {
	Protocol    string `json:"protocol"`    // tcp, tcp6, udp, udp6
	LocalAddr   string `json:"localAddr"`   // Local IP address
	LocalPort   int    `json:"localPort"`   // Local port
	RemoteAddr  string `json:"remoteAddr"`  // Remote IP address (empty for listening)
	RemotePort  int    `json:"remotePort"`  // Remote port (0 for listening)
	State       string `json:"state"`       // Connection state (LISTEN, ESTABLISHED, etc.)
	Pid         int32  `json:"pid"`         // Process ID (0 if unavailable)
	ProcessName string `json:"processName"` // Process name (empty if unavailable)
}

// InterfaceCounters is the aggregate traffic snapshot across all interfaces.
type InterfaceCounters struct {
	BytesSent   uint64 `json:"bytesSent"`
	BytesRecv   uint64 `json:"bytesRecv"`
	PacketsSent uint64 `json:"packetsSent"`
	PacketsRecv uint64 `json:"packetsRecv"`
	ErrorsIn    uint64 `json:"errorsIn"`
	ErrorsOut   uint64 `json:"errorsOut"`
}

// HostInfo identifies the scanned machine.
type HostInfo struct {
	Hostname      string `json:"hostname"`
	OSType        string `json:"osType"`
	OSVersion     string `json:"osVersion"`
	KernelVersion string `json:"kernelVersion,omitempty"`
	Architecture  string `json:"architecture"`
	CPUModel      string `json:"cpuModel,omitempty"`
}

// Snapshot is the complete result of one scan. It is assembled once per run
// and never mutated afterwards; all grouping and classification work on it
// read-only. The process and connection lists are independent point-in-time
// queries and may race with process churn, which is acceptable for a
// diagnostic tool.
type Snapshot struct {
	Timestamp   time.Time          `json:"timestamp"`
	Host        HostInfo           `json:"host"`
	Processes   []ProcessRecord    `json:"processes"`
	Connections []ConnectionRecord `json:"connections"`
	Counters    *InterfaceCounters `json:"counters,omitempty"` // nil when unavailable
	Elevated    bool               `json:"elevated"`
}

// ProcessByPid returns the process record owning the given pid, if present
// in the snapshot.
func (s *Snapshot) ProcessByPid(pid int32) (ProcessRecord, bool) {
	for _, p := range s.Processes {
		if p.Pid == pid {
			return p, true
		}
	}
	return ProcessRecord{}, false
}
