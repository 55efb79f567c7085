package probe

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostFacts contains OS identity and uptime
type HostFacts struct {
	OSName        string
	OSVersion     string
	Arch          string
	KernelVersion string
	Hostname      string
	UptimeSeconds uint64
}

// Source is the OS facility the collector reads hardware facts from
type Source interface {
	Host(ctx context.Context) (*HostFacts, error)
	Cores(ctx context.Context) ([]CoreRecord, error)
	Memory(ctx context.Context) (total, used uint64, err error)
	Disk(ctx context.Context) (total, used uint64, err error)
}

// GopsutilSource reads facts through gopsutil
type GopsutilSource struct{}

// Host gathers OS, kernel and uptime information. gopsutil fills what it
// can even when one of its sub-queries fails, so a partial result is
// returned together with the error.
func (GopsutilSource) Host(ctx context.Context) (*HostFacts, error) {
	info, err := host.InfoWithContext(ctx)
	if info == nil {
		if err == nil {
			err = fmt.Errorf("empty host info")
		}
		return nil, err
	}

	osName := info.Platform
	if osName == "" {
		osName = info.OS
	}
	arch := info.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}

	return &HostFacts{
		OSName:        osName,
		OSVersion:     info.PlatformVersion,
		Arch:          arch,
		KernelVersion: info.KernelVersion,
		Hostname:      info.Hostname,
		UptimeSeconds: info.Uptime,
	}, err
}

// Cores returns one record per logical CPU
func (GopsutilSource) Cores(ctx context.Context) ([]CoreRecord, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		logical = 0
	}

	return expandCores(infos, logical), nil
}

// expandCores turns gopsutil CPU entries into per-logical-core records.
// Linux reports one entry per logical CPU already; macOS and Windows
// report one per package, so the logical count is spread across them.
func expandCores(infos []cpu.InfoStat, logical int) []CoreRecord {
	if len(infos) == 0 {
		return nil
	}

	if logical <= 0 || logical == len(infos) {
		records := make([]CoreRecord, 0, len(infos))
		for _, info := range infos {
			records = append(records, coreRecord(info))
		}
		return records
	}

	records := make([]CoreRecord, 0, logical)
	per := logical / len(infos)
	extra := logical % len(infos)
	for i, info := range infos {
		n := per
		if i < extra {
			n++
		}
		for j := 0; j < n; j++ {
			records = append(records, coreRecord(info))
		}
	}
	return records
}

func coreRecord(info cpu.InfoStat) CoreRecord {
	mhz := uint64(0)
	if info.Mhz > 0 {
		mhz = uint64(math.Round(info.Mhz))
	}
	return CoreRecord{Model: info.ModelName, MHz: mhz}
}

// Memory returns total and used physical memory in bytes
func (GopsutilSource) Memory(ctx context.Context) (uint64, uint64, error) {
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return vmem.Total, vmem.Used, nil
}

// Disk aggregates capacity and usage across real filesystems
func (GopsutilSource) Disk(ctx context.Context) (uint64, uint64, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}

	var totalSpace, usedSpace uint64
	seen := make(map[string]bool)

	for _, partition := range partitions {
		// Skip special filesystems
		if shouldSkipFilesystem(partition.Fstype) {
			continue
		}
		// Bind mounts report the same device twice
		if seen[partition.Device] {
			continue
		}
		seen[partition.Device] = true

		usage, err := disk.UsageWithContext(ctx, partition.Mountpoint)
		if err != nil {
			continue
		}

		totalSpace += usage.Total
		usedSpace += usage.Used
	}

	return totalSpace, usedSpace, nil
}

// shouldSkipFilesystem determines if a filesystem type should be skipped
func shouldSkipFilesystem(fstype string) bool {
	skipTypes := map[string]bool{
		"tmpfs":    true,
		"devtmpfs": true,
		"devfs":    true,
		"proc":     true,
		"sysfs":    true,
		"cgroup":   true,
		"cgroup2":  true,
		"nsfs":     true,
		"overlay":  true,
		"squashfs": true,
		"iso9660":  true,
		"autofs":   true,
	}

	return skipTypes[fstype]
}
