// Package render formats a quake report as colored, column-aligned text.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/quakewatch/quake-report-etl/internal/domain"
)

// colors maps a bucket's display color tag onto a terminal color. Unknown
// tags render unstyled.
var colors = map[string]*color.Color{
	"white":   color.New(color.FgWhite),
	"cyan":    color.New(color.FgCyan),
	"green":   color.New(color.FgGreen),
	"yellow":  color.New(color.FgYellow),
	"red":     color.New(color.FgRed),
	"magenta": color.New(color.FgMagenta),
}

var newMarker = color.New(color.FgGreen, color.Bold)

// Console renders reports to a terminal-ish writer.
// It implements pipeline.Renderer.
type Console struct {
	out io.Writer
}

// NewConsole creates a renderer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Render writes the bucket counts followed by the strong-quake list.
// The label column is as wide as the longest bucket label; the count column
// is the widest total's digit count plus two. An "↑N" marker appears only
// for buckets with new events since the previous run.
func (c *Console) Render(report *domain.Report) error {
	labelWidth, countWidth := columnWidths(report.Counts)

	if _, err := fmt.Fprintf(c.out, "Seismic activity — %d events\n\n", report.TotalRows); err != nil {
		return err
	}

	for i, bucket := range domain.Buckets {
		counts := report.Counts[i]
		line := fmt.Sprintf("%-*s %*d", labelWidth, bucket.Label, countWidth, counts.Total)
		if _, err := bucketColor(bucket).Fprint(c.out, line); err != nil {
			return err
		}
		if counts.NewSinceLast > 0 {
			if _, err := newMarker.Fprintf(c.out, "  ↑%d", counts.NewSinceLast); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(c.out); err != nil {
			return err
		}
	}

	if len(report.Strong) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(c.out, "\nStrong quakes (M %.0f+)\n", domain.StrongThreshold); err != nil {
		return err
	}
	for _, quake := range report.Strong {
		if err := c.renderQuake(quake); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) renderQuake(quake domain.QuakeRecord) error {
	mag := "M ?.?"
	styled := colors["white"]
	if quake.Magnitude != nil {
		mag = fmt.Sprintf("M %.1f", *quake.Magnitude)
		if i, ok := domain.BucketFor(*quake.Magnitude); ok {
			styled = bucketColor(domain.Buckets[i])
		}
	}
	line := fmt.Sprintf("%s  %s  %s  depth %s km", mag, quake.DateTime, quake.Location, quake.Depth)
	_, err := styled.Fprintln(c.out, line)
	return err
}

func columnWidths(counts []domain.BucketCounts) (labelWidth, countWidth int) {
	for _, b := range domain.Buckets {
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
	}
	maxDigits := 1
	for _, c := range counts {
		if d := len(strconv.Itoa(c.Total)); d > maxDigits {
			maxDigits = d
		}
	}
	return labelWidth, maxDigits + 2
}

func bucketColor(b domain.Bucket) *color.Color {
	if c, ok := colors[b.Color]; ok {
		return c
	}
	return color.New()
}
