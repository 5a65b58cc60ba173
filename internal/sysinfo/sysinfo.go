// Host facts the run records and the overload watchdog need.

package sysinfo

import (
	"fmt"
	"net"

	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryUsedPercent samples system-wide memory usage.
func MemoryUsedPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("failed to read memory stats: %w", err)
	}
	return vm.UsedPercent, nil
}

// DefaultAddress reports the outbound IP of this host. The dial never
// sends a packet; it only asks the kernel which interface would route.
func DefaultAddress() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "unknown"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
