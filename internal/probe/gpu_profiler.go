package probe

import (
	"context"
	"strings"

	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

const profilerNameMarker = `"_name" : "`

// MacGPULister reads display information from system_profiler
type MacGPULister struct {
	runner Runner
	log    logrus.FieldLogger
}

// ListGPUs runs `system_profiler SPDisplaysDataType -json`
func (l *MacGPULister) ListGPUs(ctx context.Context) []models.GPUInfo {
	out, err := l.runner.Run(ctx, "system_profiler", "SPDisplaysDataType", "-json")
	if err != nil {
		logProbeFailure(l.log, "gpu.system_profiler", err)
		return models.UnknownGPUs()
	}
	return orUnknown(parseSystemProfiler(string(out)))
}

// parseSystemProfiler scans the raw JSON text for every `"_name" : "`
// marker and takes the quoted value after it. An unterminated value ends
// the scan.
func parseSystemProfiler(output string) []models.GPUInfo {
	var gpus []models.GPUInfo

	rest := output
	for {
		i := strings.Index(rest, profilerNameMarker)
		if i < 0 {
			break
		}
		rest = rest[i+len(profilerNameMarker):]

		end := strings.IndexByte(rest, '"')
		if end < 0 {
			break
		}
		name := rest[:end]
		rest = rest[end:]

		gpus = append(gpus, models.GPUInfo{
			Name:   name,
			Vendor: classifyGPUVendor(name),
		})
	}

	return gpus
}

// classifyGPUVendor maps a marketing name to a vendor
func classifyGPUVendor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "nvidia"):
		return "NVIDIA"
	case strings.Contains(lower, "amd") || strings.Contains(lower, "radeon"):
		return "AMD"
	case strings.Contains(lower, "intel"):
		return "Intel"
	default:
		return models.Unknown
	}
}
