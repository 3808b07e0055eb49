package collectors

import (
	"errors"

	"github.com/shirou/gopsutil/v3/net"
)

// queryCounters reads the aggregate interface counters (all NICs summed).
func queryCounters() (*InterfaceCounters, error) {
	stats, err := net.IOCounters(false)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, errors.New("no interface counters reported")
	}

	total := stats[0]
	return &InterfaceCounters{
		BytesSent:   total.BytesSent,
		BytesRecv:   total.BytesRecv,
		PacketsSent: total.PacketsSent,
		PacketsRecv: total.PacketsRecv,
		ErrorsIn:    total.Errin,
		ErrorsOut:   total.Errout,
	}, nil
}
