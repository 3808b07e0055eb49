package collectors

import (
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// queryConnections enumerates all inet (TCP/UDP, v4/v6) sockets. Sockets
// whose owning process cannot be resolved keep Pid 0 and an empty
// ProcessName; the aggregator buckets those as unidentified.
func queryConnections() ([]ConnectionRecord, error) {
	conns, err := net.Connections("inet")
	if err != nil {
		return nil, err
	}

	records := make([]ConnectionRecord, 0, len(conns))
	processCache := make(map[int32]string)

	for _, conn := range conns {
		if conn.Laddr.IP == "" && conn.Laddr.Port == 0 {
			continue
		}

		processName := ""
		if conn.Pid > 0 {
			if cached, ok := processCache[conn.Pid]; ok {
				processName = cached
			} else if proc, err := process.NewProcess(conn.Pid); err == nil {
				if name, err := proc.Name(); err == nil {
					processName = name
					processCache[conn.Pid] = name
				}
			}
		}

		records = append(records, ConnectionRecord{
			Protocol:    protocolString(conn.Type, conn.Family),
			LocalAddr:   conn.Laddr.IP,
			LocalPort:   int(conn.Laddr.Port),
			RemoteAddr:  conn.Raddr.IP,
			RemotePort:  int(conn.Raddr.Port),
			State:       conn.Status,
			Pid:         conn.Pid,
			ProcessName: processName,
		})
	}

	return records, nil
}

// protocolString converts gopsutil type/family to a protocol string.
func protocolString(connType uint32, family uint32) string {
	// Type: 1=TCP, 2=UDP
	// Family: 2=IPv4, 10/30=IPv6 (10 on Linux, 30 on macOS)
	isIPv6 := family == 10 || family == 30

	switch connType {
	case 1: // TCP
		if isIPv6 {
			return "tcp6"
		}
		return "tcp"
	case 2: // UDP
		if isIPv6 {
			return "udp6"
		}
		return "udp"
	default:
		return "unknown"
	}
}
