package statviews

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/niceyeti/lgp/telemetry/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// maxPoints bounds how many generations the chart keeps in view; older
// points scroll off rather than growing the polyline without bound.
const maxPoints = 200

const (
	chartWidth  = 900
	chartHeight = 300
	chartPad    = 20
)

// FitnessHistory plots best/median/worst fitness per generation as three
// overlaid polylines, scaled to fit the observed value range so far.
type FitnessHistory struct {
	id      string
	history []Stat
	updates <-chan []fastview.EleUpdate
}

// NewFitnessHistory builds the view and wires its update channel to the
// stream of per-generation stats.
func NewFitnessHistory(
	done <-chan struct{},
	stats <-chan Stat,
) (fh *FitnessHistory) {
	id := "fitnesshistory"
	if strings.Contains(id, "-") {
		fmt.Println("WARNING: hyphenated ids interfere with html/template's `template` directive")
	}
	fh = &FitnessHistory{id: template.HTMLEscapeString(id)}
	fh.updates = channerics.Convert(done, stats, fh.onUpdate)
	return
}

func (fh *FitnessHistory) Updates() <-chan []fastview.EleUpdate {
	return fh.updates
}

// onUpdate appends the new stat to the running history and recomputes
// the three polylines. Called from a single goroutine per Convert's
// contract, so mutating fh.history here is safe without locking.
func (fh *FitnessHistory) onUpdate(stat Stat) []fastview.EleUpdate {
	fh.history = append(fh.history, stat)
	if len(fh.history) > maxPoints {
		fh.history = fh.history[len(fh.history)-maxPoints:]
	}

	minVal, maxVal := math.MaxFloat64, -math.MaxFloat64
	for _, s := range fh.history {
		minVal = math.Min(minVal, math.Min(s.Worst, math.Min(s.Median, s.Best)))
		maxVal = math.Max(maxVal, math.Max(s.Worst, math.Max(s.Median, s.Best)))
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}

	return []fastview.EleUpdate{
		{
			EleId: fh.id + "-best",
			Ops:   []fastview.Op{{Key: "points", Value: fh.polyline(minVal, maxVal, func(s Stat) float64 { return s.Best })}},
		},
		{
			EleId: fh.id + "-median",
			Ops:   []fastview.Op{{Key: "points", Value: fh.polyline(minVal, maxVal, func(s Stat) float64 { return s.Median })}},
		},
		{
			EleId: fh.id + "-worst",
			Ops:   []fastview.Op{{Key: "points", Value: fh.polyline(minVal, maxVal, func(s Stat) float64 { return s.Worst })}},
		},
		{
			EleId: fh.id + "-label",
			Ops:   []fastview.Op{{Key: "textContent", Value: fmt.Sprintf("generation %d  best=%.4f  median=%.4f  worst=%.4f", stat.Generation, stat.Best, stat.Median, stat.Worst)}},
		},
	}
}

// polyline projects the series picked out by pick into SVG viewbox
// coordinates, scaled between minVal and maxVal.
func (fh *FitnessHistory) polyline(minVal, maxVal float64, pick func(Stat) float64) string {
	n := len(fh.history)
	if n == 0 {
		return ""
	}

	innerW := float64(chartWidth - 2*chartPad)
	innerH := float64(chartHeight - 2*chartPad)

	var b strings.Builder
	for i, s := range fh.history {
		x := float64(chartPad)
		if n > 1 {
			x += innerW * float64(i) / float64(n-1)
		}
		frac := (pick(s) - minVal) / (maxVal - minVal)
		y := float64(chartPad) + innerH*(1-frac)
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}

// Parse returns an svg chart with three polylines (best/median/worst)
// and a text label reporting the latest generation's values.
func (fh *FitnessHistory) Parse(
	t *template.Template,
) (name string, err error) {
	name = fh.id
	_, err = t.Parse(
		`{{ define "` + name + `" }}
		<div style="padding:20px;">
			<svg id="` + fh.id + `" xmlns='http://www.w3.org/2000/svg'
				width="` + fmt.Sprintf("%d", chartWidth) + `px"
				height="` + fmt.Sprintf("%d", chartHeight+30) + `px"
				style="background:white; stroke-width:2; fill:none;">
				<polyline id="` + fh.id + `-best" points="" style="stroke:green" />
				<polyline id="` + fh.id + `-median" points="" style="stroke:steelblue" />
				<polyline id="` + fh.id + `-worst" points="" style="stroke:firebrick" />
				<text id="` + fh.id + `-label" x="` + fmt.Sprintf("%d", chartPad) + `" y="` + fmt.Sprintf("%d", chartHeight+20) + `" font-family="monospace" font-size="14"></text>
			</svg>
		</div>
		{{ end }}`)
	return
}
