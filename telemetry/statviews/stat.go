// Package statviews implements the one view this repository actually
// needs: a running chart of population fitness across generations. It
// plays the role the teacher's cell_views package played for the
// racetrack (a view built on telemetry/fastview), but there is no 2D
// grid in this domain, so the content is a line chart instead of an
// isometric surface.
package statviews

// Stat is one generation's fitness summary, the data-model this
// package's view renders.
type Stat struct {
	Generation int
	Best       float64
	Median     float64
	Worst      float64
}
