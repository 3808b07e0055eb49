package collectors

import (
	"runtime"

	"github.com/breeze-rmm/hostscan/internal/logging"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

// queryHost gathers host identification. All lookups are best effort;
// missing fields stay empty and the report renders what it has.
func queryHost() HostInfo {
	info := HostInfo{
		Architecture: runtime.GOARCH,
	}

	hostInfo, err := host.Info()
	if err == nil {
		info.Hostname = hostInfo.Hostname
		info.OSType = normalizeOSType(hostInfo.OS)
		info.OSVersion = hostInfo.Platform + " " + hostInfo.PlatformVersion
		info.KernelVersion = hostInfo.KernelVersion
	} else {
		log.Warn("host info unavailable", logging.KeyError, err)
	}

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}

	return info
}

func normalizeOSType(os string) string {
	if os == "darwin" {
		return "macos"
	}
	return os
}
