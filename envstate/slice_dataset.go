package envstate

// SliceDataset is a classification dataset fixture backed by an
// in-memory matrix of feature rows and their expected classes. Grounded
// on the teacher's grid_world.Convert pattern of turning a raw slice
// into a typed, iterable state space — here reduced to the simplest
// shape fitness.Classification needs.
type SliceDataset struct {
	Rows     [][]float64
	Expected []int

	idx int
}

// NewSliceDataset builds a dataset positioned before the first row; the
// first Next call advances onto row 0.
func NewSliceDataset(rows [][]float64, expected []int) *SliceDataset {
	return &SliceDataset{Rows: rows, Expected: expected, idx: -1}
}

func (d *SliceDataset) Get(i int) float64 {
	row := d.Rows[d.idx]
	return row[i%len(row)]
}

// ExecuteAction compares the predicted class against the current row's
// expected class, returning 1 on a match and 0 otherwise.
func (d *SliceDataset) ExecuteAction(predicted int) float64 {
	if predicted == d.Expected[d.idx] {
		return 1
	}
	return 0
}

func (d *SliceDataset) Next() bool {
	d.idx++
	return d.idx < len(d.Rows)
}

// Reset rewinds the iterator so the dataset can be walked again by the
// next trial.
func (d *SliceDataset) Reset() {
	d.idx = -1
}

// Len reports the number of rows, used by fitness.Classification to
// normalize the raw match count.
func (d *SliceDataset) Len() int {
	return len(d.Rows)
}
