package parallel

// Band is a half-open row range [Start, End) of a table generation pass.
// Bands produced by Bands never overlap, so writers need no locking.
type Band struct {
	Start int
	End   int
}

// minBandRows keeps bands large enough that per-band dispatch overhead
// stays negligible next to the row work itself.
const minBandRows = 16

// Bands splits total rows into at most n contiguous bands of near-equal
// height, in row order. It returns fewer bands when total is small; for
// very small inputs it returns a single band, which callers typically
// treat as the cue to skip the pool entirely.
func Bands(total, n int) []Band {
	if total <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if most := (total + minBandRows - 1) / minBandRows; n > most {
		n = most
	}

	bands := make([]Band, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		// Spreading the remainder keeps band heights within one row
		// of each other.
		end := start + (total-start)/(n-i)
		bands = append(bands, Band{Start: start, End: end})
		start = end
	}
	return bands
}
