package probe

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	wmicVendorKey = "AdapterCompatibility="
	wmicNameKey   = "Name="
)

// psVideoControllers prints the same KEY=VALUE records as wmic /format:value.
// Newer Windows builds ship without wmic.
const psVideoControllers = `Get-CimInstance Win32_VideoController | ForEach-Object { "AdapterCompatibility=$($_.AdapterCompatibility)"; "Name=$($_.Name)"; "" }`

// WindowsGPULister queries Win32_VideoController
type WindowsGPULister struct {
	runner Runner
	log    logrus.FieldLogger
}

// ListGPUs runs wmic, falling back to PowerShell CIM when wmic is missing
func (l *WindowsGPULister) ListGPUs(ctx context.Context) []models.GPUInfo {
	out, err := l.runner.Run(ctx, "wmic",
		"path", "win32_VideoController", "get", "name,AdapterCompatibility", "/format:value")
	if err != nil {
		logProbeFailure(l.log, "gpu.wmic", err)
		if ctx.Err() != nil {
			return models.UnknownGPUs()
		}

		out, err = l.runner.Run(ctx, "powershell", "-NoProfile", "-Command", psVideoControllers)
		if err != nil {
			logProbeFailure(l.log, "gpu.powershell", err)
			return models.UnknownGPUs()
		}
	}

	return orUnknown(parseWMIC(decodeConsoleOutput(out)))
}

// parseWMIC reads KEY=VALUE lines. A non-empty Name closes the current
// record once a vendor has also been seen since the last push; empty
// values are ignored.
func parseWMIC(output string) []models.GPUInfo {
	var gpus []models.GPUInfo
	var current models.GPUInfo

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, wmicVendorKey):
			if v := strings.TrimSpace(strings.TrimPrefix(line, wmicVendorKey)); v != "" {
				current.Vendor = v
			}
		case strings.HasPrefix(line, wmicNameKey):
			v := strings.TrimSpace(strings.TrimPrefix(line, wmicNameKey))
			if v == "" {
				continue
			}
			current.Name = v
			if current.Vendor != "" {
				gpus = append(gpus, current)
				current = models.GPUInfo{}
			}
		}
	}

	return gpus
}

// decodeConsoleOutput converts UTF-16LE console output (wmic writes it
// when redirected on some systems) to UTF-8
func decodeConsoleOutput(out []byte) string {
	if !bytes.HasPrefix(out, []byte{0xFF, 0xFE}) {
		return string(out)
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, out)
	if err != nil {
		return string(out)
	}
	return string(decoded)
}
