package probe

import (
	"bufio"
	"context"
	"strings"

	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

// LinuxGPULister reads the PCI device list in machine-readable form
type LinuxGPULister struct {
	runner Runner
	log    logrus.FieldLogger
}

// ListGPUs runs `lspci -mm`
func (l *LinuxGPULister) ListGPUs(ctx context.Context) []models.GPUInfo {
	out, err := l.runner.Run(ctx, "lspci", "-mm")
	if err != nil {
		logProbeFailure(l.log, "gpu.lspci", err)
		return models.UnknownGPUs()
	}
	return orUnknown(parseLSPCI(string(out)))
}

// parseLSPCI extracts display controllers from `lspci -mm` lines such as
//
//	00:02.0 "VGA compatible controller" "Intel Corporation" "UHD Graphics 620" -r07 "Lenovo" "ThinkPad"
//
// Split on quotes, segment 3 is the vendor and segment 5 the device.
func parseLSPCI(output string) []models.GPUInfo {
	var gpus []models.GPUInfo

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "VGA compatible controller") && !strings.Contains(line, "3D controller") {
			continue
		}

		parts := strings.Split(line, `"`)
		if len(parts) < 6 {
			continue
		}

		gpus = append(gpus, models.GPUInfo{
			Name:   parts[3] + " " + parts[5],
			Vendor: parts[3],
		})
	}

	return gpus
}
