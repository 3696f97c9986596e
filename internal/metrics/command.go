package metrics

import "runtime"

// Platform represents the operating system type of the monitored host.
type Platform string

const (
	// PlatformLinux indicates a Linux host.
	PlatformLinux Platform = "linux"
	// PlatformDarwin indicates a macOS host.
	PlatformDarwin Platform = "darwin"
	// PlatformUnknown indicates an unknown platform.
	PlatformUnknown Platform = "unknown"
)

// Separator used to split batched command output.
const OutputSeparator = "---"

// DetectPlatform returns the platform of the current process.
func DetectPlatform() Platform {
	switch runtime.GOOS {
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformUnknown
	}
}

// BuildSampleCommand returns a single batched command that collects all
// metrics for the specified platform, so one shell invocation covers the
// whole tick. Optional tools (iostat) fail silently; their section comes
// back empty and the corresponding gauge is marked unavailable.
func BuildSampleCommand(platform Platform) string {
	switch platform {
	case PlatformDarwin:
		return buildDarwinCommand()
	default:
		// Default to the Linux command; on an unknown platform the
		// sections that fail simply degrade to unavailable gauges.
		return buildLinuxCommand()
	}
}

// buildLinuxCommand returns the batched metrics command for Linux hosts.
// Output sections are separated by "---" and include:
// 0. top -bn1 header    - CPU utilization (%Cpu(s) line)
// 1. free               - memory totals
// 2. iostat -x 1 2      - disk utilization (optional, needs sysstat)
// 3. /proc/net/dev      - network byte counters (optional)
func buildLinuxCommand() string {
	return `top -bn1 2>/dev/null | head -5; echo "---"; free 2>/dev/null; echo "---"; iostat -x 1 2 2>/dev/null || true; echo "---"; cat /proc/net/dev 2>/dev/null || true`
}

// buildDarwinCommand returns the batched metrics command for macOS hosts.
// Output sections are separated by "---" and include:
// 0. top -l 1 -n 0            - CPU usage line
// 1. vm_stat + sysctl memsize - memory statistics with total memory
// 2. iostat -d -c 2           - disk throughput (optional)
// 3. netstat -ib              - network byte counters (optional)
func buildDarwinCommand() string {
	return `top -l 1 -n 0 2>/dev/null; echo "---"; vm_stat; sysctl hw.memsize 2>/dev/null; echo "---"; iostat -d -c 2 2>/dev/null || true; echo "---"; netstat -ib 2>/dev/null || true`
}
