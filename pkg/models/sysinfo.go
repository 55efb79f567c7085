package models

// Sentinel values substituted when a probe cannot determine a fact
const (
	Unknown         = "Unknown"
	UnknownGPU      = "Unknown GPU"
	UnknownIP       = "Unknown IP"
	UnknownShell    = "Unknown Shell"
	UnknownTerminal = "Unknown Terminal"
)

// SystemInfo is the snapshot produced by one collection pass.
// It is never mutated after the collector returns it.
type SystemInfo struct {
	// Operating system
	OSName        string `json:"os_name"`        // ubuntu, darwin, Microsoft Windows 11 Pro
	OSVersion     string `json:"os_version"`     // 22.04, 14.4.1
	Arch          string `json:"arch"`           // x86_64, arm64
	KernelVersion string `json:"kernel_version"` // 6.5.0-35-generic
	Hostname      string `json:"hostname"`
	Username      string `json:"username"`
	Uptime        string `json:"uptime"` // formatted, e.g. "3d 4h 12m"

	// Hardware
	CPUs        []CPUInfo `json:"cpus"`
	MemoryTotal uint64    `json:"memory_total"` // bytes
	MemoryUsed  uint64    `json:"memory_used"`  // bytes
	DiskTotal   uint64    `json:"disk_total"`   // bytes, 0 if unavailable
	DiskUsed    uint64    `json:"disk_used"`    // bytes, 0 if unavailable
	GPUs        []GPUInfo `json:"gpus"`         // never empty

	// Session
	LocalIP  string `json:"local_ip"`
	Shell    string `json:"shell"`
	Terminal string `json:"terminal"`
}

// CPUInfo groups logical cores sharing the same model string
type CPUInfo struct {
	Model        string `json:"model"`
	Cores        int    `json:"cores"`         // logical cores with this model
	FrequencyMHz uint64 `json:"frequency_mhz"` // taken from the first core seen
}

// GPUInfo describes one graphics adapter
type GPUInfo struct {
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
}

// UnknownGPUs returns the single-entry list used when no GPU was found
func UnknownGPUs() []GPUInfo {
	return []GPUInfo{{Name: UnknownGPU, Vendor: Unknown}}
}

// TotalCores returns the number of logical cores across all CPU entries
func (s *SystemInfo) TotalCores() int {
	total := 0
	for _, c := range s.CPUs {
		total += c.Cores
	}
	return total
}
