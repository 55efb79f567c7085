package probe

import (
	"context"

	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
)

// GPULister enumerates graphics adapters. Implementations never return
// an empty list: any failure yields the single "Unknown GPU" entry.
type GPULister interface {
	ListGPUs(ctx context.Context) []models.GPUInfo
}

// NewGPULister selects the strategy for goos once, at construction
func NewGPULister(goos string, runner Runner, log logrus.FieldLogger) GPULister {
	switch goos {
	case "windows":
		return &WindowsGPULister{runner: runner, log: log}
	case "linux":
		return &LinuxGPULister{runner: runner, log: log}
	case "darwin":
		return &MacGPULister{runner: runner, log: log}
	default:
		return FallbackGPULister{}
	}
}

// FallbackGPULister is used on platforms without a known inventory tool
type FallbackGPULister struct{}

// ListGPUs always returns the sentinel entry
func (FallbackGPULister) ListGPUs(context.Context) []models.GPUInfo {
	return models.UnknownGPUs()
}

// orUnknown substitutes the sentinel list for an empty result
func orUnknown(gpus []models.GPUInfo) []models.GPUInfo {
	if len(gpus) == 0 {
		return models.UnknownGPUs()
	}
	return gpus
}

// logProbeFailure records a recovered failure at debug level
func logProbeFailure(log logrus.FieldLogger, probe string, err error) {
	if log == nil {
		return
	}
	log.WithError(err).WithField("probe", probe).Debug("Probe failed, using fallback")
}
