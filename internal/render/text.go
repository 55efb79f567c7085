package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/monify-labs/hostfetch/internal/config"
	"github.com/monify-labs/hostfetch/pkg/format"
	"github.com/monify-labs/hostfetch/pkg/models"
	"github.com/muesli/termenv"
)

const (
	defaultMaxValueWidth = 60
	cpuModelWords        = 4
)

// TextOptions controls the side-by-side layout
type TextOptions struct {
	Gap           int    // spaces between logo and info
	Color         bool   // emit ANSI styles
	Logo          string // logo key or "auto"
	MaxValueWidth int    // values wider than this are truncated
}

// TextRenderer draws the logo next to labelled info lines
type TextRenderer struct {
	opts TextOptions
}

// NewTextRenderer creates a text renderer
func NewTextRenderer(opts TextOptions) *TextRenderer {
	if opts.Gap < 0 {
		opts.Gap = 0
	}
	if opts.MaxValueWidth <= 0 {
		opts.MaxValueWidth = defaultMaxValueWidth
	}
	if opts.Logo == "" {
		opts.Logo = config.LogoAuto
	}
	return &TextRenderer{opts: opts}
}

// ColorEnabled resolves a color mode against the output file.
// "auto" colors only a terminal and honors NO_COLOR.
func ColorEnabled(mode string, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" || out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// line is one labelled row of the info column
type line struct {
	label string
	value string
}

// Render writes the logo and info columns to w
func (r *TextRenderer) Render(w io.Writer, info *models.SystemInfo) error {
	if info == nil {
		return ErrNilSnapshot
	}

	re := lipgloss.NewRenderer(w)
	if r.opts.Color {
		re.SetColorProfile(termenv.ANSI256)
	} else {
		re.SetColorProfile(termenv.Ascii)
	}

	mark := selectLogo(r.opts.Logo, info.OSName)
	accent := lipgloss.Color(mark.color)
	logoStyle := re.NewStyle().Foreground(accent)
	labelStyle := re.NewStyle().Foreground(accent).Bold(true)
	titleStyle := re.NewStyle().Bold(true)

	header := fmt.Sprintf("%s@%s", info.Username, info.Hostname)
	rows := []string{
		titleStyle.Render(header),
		strings.Repeat("-", runewidth.StringWidth(header)),
	}
	for _, l := range infoLines(info) {
		value := runewidth.Truncate(l.value, r.opts.MaxValueWidth, "…")
		rows = append(rows, labelStyle.Render(l.label+":")+" "+value)
	}

	logoBlock := logoStyle.Render(strings.Join(mark.art, "\n"))
	gap := strings.Repeat(" ", r.opts.Gap)
	joined := lipgloss.JoinHorizontal(lipgloss.Top, logoBlock, gap, strings.Join(rows, "\n"))

	var out strings.Builder
	for _, row := range strings.Split(joined, "\n") {
		out.WriteString(strings.TrimRight(row, " "))
		out.WriteByte('\n')
	}

	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// infoLines lays out the snapshot in display order
func infoLines(info *models.SystemInfo) []line {
	lines := []line{
		{"OS", fmt.Sprintf("%s %s, %s", info.OSName, info.OSVersion, info.Arch)},
		{"Kernel", info.KernelVersion},
		{"Host", info.Hostname},
		{"User", info.Username},
		{"Uptime", info.Uptime},
	}

	switch len(info.CPUs) {
	case 0:
		lines = append(lines, line{"CPU", models.Unknown})
	case 1:
		lines = append(lines, line{"CPU", cpuLabel(info.CPUs[0])})
	default:
		for i, c := range info.CPUs {
			lines = append(lines, line{fmt.Sprintf("CPU %d", i+1), cpuLabel(c)})
		}
	}

	if len(info.GPUs) == 1 {
		lines = append(lines, line{"GPU", info.GPUs[0].Name})
	} else {
		for i, g := range info.GPUs {
			lines = append(lines, line{fmt.Sprintf("GPU %d", i+1), g.Name})
		}
	}

	lines = append(lines, line{"Memory", usage(info.MemoryUsed, info.MemoryTotal)})
	if info.DiskTotal > 0 {
		lines = append(lines, line{"Disk", usage(info.DiskUsed, info.DiskTotal)})
	}

	return append(lines,
		line{"Local IP", info.LocalIP},
		line{"Shell", info.Shell},
		line{"Terminal", info.Terminal},
	)
}

// cpuLabel shortens the model to its first words, e.g.
// "Intel Core i7-9750H CPU (12 cores) @ 2.60GHz"
func cpuLabel(c models.CPUInfo) string {
	words := strings.Fields(c.Model)
	if len(words) > cpuModelWords {
		words = words[:cpuModelWords]
	}
	model := strings.Join(words, " ")
	if model == "" {
		model = models.Unknown
	}

	label := fmt.Sprintf("%s (%d cores)", model, c.Cores)
	if c.FrequencyMHz > 0 {
		label += fmt.Sprintf(" @ %.2fGHz", float64(c.FrequencyMHz)/1000)
	}
	return label
}

// usage formats "used / total (pct%)"
func usage(used, total uint64) string {
	if total == 0 {
		return models.Unknown
	}
	pct := float64(used) / float64(total) * 100
	return fmt.Sprintf("%s / %s (%d%%)", format.Bytes(used), format.Bytes(total), int(pct))
}
