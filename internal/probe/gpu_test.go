package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWMIC = "\r\r\n\r\r\nAdapterCompatibility=NVIDIA\r\r\nName=NVIDIA GeForce RTX 3070\r\r\n\r\r\n\r\r\n" +
	"AdapterCompatibility=Intel Corporation\r\r\nName=Intel(R) UHD Graphics 770\r\r\n\r\r\n"

const sampleLSPCI = `00:00.0 "Host bridge" "Intel Corporation" "8th Gen Core Processor Host Bridge/DRAM Registers" -r07 "Lenovo" "ThinkPad T480"
00:02.0 "VGA compatible controller" "Intel Corporation" "UHD Graphics 620" -r07 "Lenovo" "ThinkPad T480"
00:14.0 "USB controller" "Intel Corporation" "Sunrise Point-LP USB 3.0 xHCI Controller" -r21 -p30 "Lenovo" "ThinkPad T480"
01:00.0 "3D controller" "NVIDIA Corporation" "GP108M [GeForce MX150]" -ra1 "Lenovo" "GP108M [GeForce MX150]"
`

const sampleProfiler = `{
  "SPDisplaysDataType" : [
    {
      "_name" : "Intel Iris Plus Graphics 655",
      "sppci_bus" : "spdisplays_builtin"
    },
    {
      "_name" : "AMD Radeon Pro 560X",
      "sppci_bus" : "spdisplays_pcie_device"
    },
    {
      "_name" : "Apple M1",
      "sppci_model" : "Apple M1"
    }
  ]
}`

func TestParseWMIC(t *testing.T) {
	gpus := parseWMIC(sampleWMIC)
	require.Len(t, gpus, 2)
	assert.Equal(t, models.GPUInfo{Name: "NVIDIA GeForce RTX 3070", Vendor: "NVIDIA"}, gpus[0])
	assert.Equal(t, models.GPUInfo{Name: "Intel(R) UHD Graphics 770", Vendor: "Intel Corporation"}, gpus[1])
}

func TestParseWMICIgnoresEmptyValues(t *testing.T) {
	out := "AdapterCompatibility=\nName=Ghost Adapter\nAdapterCompatibility=AMD\nName=\nName=Radeon RX 6600\n"
	gpus := parseWMIC(out)
	require.Len(t, gpus, 1)
	assert.Equal(t, models.GPUInfo{Name: "Radeon RX 6600", Vendor: "AMD"}, gpus[0])
}

func TestParseWMICGarbage(t *testing.T) {
	assert.Empty(t, parseWMIC("ERROR:\nDescription = Invalid class.\n"))
}

func TestDecodeConsoleOutputUTF16(t *testing.T) {
	utf16 := []byte{0xFF, 0xFE, 'N', 0, 'a', 0, 'm', 0, 'e', 0, '=', 0, 'X', 0}
	assert.Equal(t, "Name=X", decodeConsoleOutput(utf16))
	assert.Equal(t, "plain", decodeConsoleOutput([]byte("plain")))
}

func TestParseLSPCI(t *testing.T) {
	gpus := parseLSPCI(sampleLSPCI)
	require.Len(t, gpus, 2)
	assert.Equal(t, models.GPUInfo{Name: "Intel Corporation UHD Graphics 620", Vendor: "Intel Corporation"}, gpus[0])
	assert.Equal(t, models.GPUInfo{Name: "NVIDIA Corporation GP108M [GeForce MX150]", Vendor: "NVIDIA Corporation"}, gpus[1])
}

func TestParseLSPCIShortLine(t *testing.T) {
	assert.Empty(t, parseLSPCI(`00:02.0 "VGA compatible controller" "Intel"`))
}

func TestParseSystemProfiler(t *testing.T) {
	gpus := parseSystemProfiler(sampleProfiler)
	require.Len(t, gpus, 3)
	assert.Equal(t, models.GPUInfo{Name: "Intel Iris Plus Graphics 655", Vendor: "Intel"}, gpus[0])
	assert.Equal(t, models.GPUInfo{Name: "AMD Radeon Pro 560X", Vendor: "AMD"}, gpus[1])
	assert.Equal(t, models.GPUInfo{Name: "Apple M1", Vendor: models.Unknown}, gpus[2])
}

func TestParseSystemProfilerUnterminated(t *testing.T) {
	gpus := parseSystemProfiler(`"_name" : "NVIDIA GeForce GT 750M", "_name" : "broken`)
	require.Len(t, gpus, 1)
	assert.Equal(t, "NVIDIA", gpus[0].Vendor)
}

func TestClassifyGPUVendor(t *testing.T) {
	tests := map[string]string{
		"NVIDIA GeForce GTX 1080": "NVIDIA",
		"AMD Radeon Pro 5500M":    "AMD",
		"Radeon RX 580":           "AMD",
		"Intel UHD Graphics 630":  "Intel",
		"Apple M3 Max":            models.Unknown,
		"":                        models.Unknown,
	}
	for name, want := range tests {
		assert.Equal(t, want, classifyGPUVendor(name), name)
	}
}

func TestGPUListersUseTheirCommands(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"wmic":            sampleWMIC,
		"lspci":           sampleLSPCI,
		"system_profiler": sampleProfiler,
	}}
	ctx := context.Background()

	assert.Len(t, NewGPULister("windows", runner, nil).ListGPUs(ctx), 2)
	assert.Len(t, NewGPULister("linux", runner, nil).ListGPUs(ctx), 2)
	assert.Len(t, NewGPULister("darwin", runner, nil).ListGPUs(ctx), 3)
	assert.Equal(t, models.UnknownGPUs(), NewGPULister("freebsd", runner, nil).ListGPUs(ctx))

	assert.Equal(t, []string{
		"wmic path win32_VideoController get name,AdapterCompatibility /format:value",
		"lspci -mm",
		"system_profiler SPDisplaysDataType -json",
	}, runner.calls)
}

func TestWindowsListerFallsBackToPowerShell(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"powershell": "AdapterCompatibility=Microsoft\r\nName=Microsoft Basic Display Adapter\r\n\r\n",
	}}

	gpus := NewGPULister("windows", runner, nil).ListGPUs(context.Background())
	require.Len(t, gpus, 1)
	assert.Equal(t, "Microsoft Basic Display Adapter", gpus[0].Name)
	assert.Len(t, runner.calls, 2)
}

func TestGPUListersNeverEmpty(t *testing.T) {
	failures := map[string]Runner{
		"not found":  failingRunner{err: ErrCommandNotFound},
		"timeout":    failingRunner{err: ErrCommandTimeout},
		"exit":       failingRunner{err: errors.New("exit status 1")},
		"empty":      &fakeRunner{outputs: map[string]string{"wmic": "", "powershell": "", "lspci": "", "system_profiler": ""}},
		"unexpected": &fakeRunner{outputs: map[string]string{"wmic": "{}", "powershell": "<xml/>", "lspci": "\"\"\"", "system_profiler": `{"_name":"x"}`}},
	}

	for _, goos := range []string{"windows", "linux", "darwin", "plan9", ""} {
		for label, runner := range failures {
			gpus := NewGPULister(goos, runner, nil).ListGPUs(context.Background())
			assert.Equal(t, models.UnknownGPUs(), gpus, "%s/%s", goos, label)
		}
	}
}

func TestGPUListerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := failingRunner{err: context.Canceled}
	gpus := NewGPULister("windows", runner, nil).ListGPUs(ctx)
	assert.Equal(t, models.UnknownGPUs(), gpus)
}
