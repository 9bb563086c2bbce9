package simulate

// PathBatch holds a dense batch of simulated price paths: nPaths rows of
// steps+1 prices each, stored row-contiguous. Column 0 equals the
// initial spot for every row and every entry is strictly positive (a
// log-Euler GBM discretization cannot cross zero).
//
// The batch is owned by the caller that receives it from Simulate and
// must be treated as immutable: the hedge replay reads rows from many
// goroutines at once.
type PathBatch struct {
	nPaths int
	steps  int
	data   []float64
}

// Paths returns the number of simulated paths (rows).
func (b *PathBatch) Paths() int { return b.nPaths }

// Steps returns the number of time steps; each row holds Steps+1 prices.
func (b *PathBatch) Steps() int { return b.steps }

// Row returns path i as a slice of length Steps()+1. The slice aliases
// the batch storage; callers must not modify it.
func (b *PathBatch) Row(i int) []float64 {
	cols := b.steps + 1
	return b.data[i*cols : (i+1)*cols]
}

// At returns the price of path i at time index j.
func (b *PathBatch) At(i, j int) float64 {
	return b.data[i*(b.steps+1)+j]
}

// Terminal returns the final price of path i.
func (b *PathBatch) Terminal(i int) float64 {
	return b.At(i, b.steps)
}
