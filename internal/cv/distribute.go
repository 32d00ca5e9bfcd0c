package cv

const distributeHead = 3

// Distribute splits items into two display columns: the first three go left,
// the next three go right, and the rest alternate left/right.
// Relative order is preserved in both columns and the input is never modified.
func Distribute[T any](items []T) ([]T, []T) {
	colA := make([]T, 0, (len(items)+1)/2+distributeHead)
	colB := make([]T, 0, len(items)/2+distributeHead)

	for i, item := range items {
		switch {
		case i < distributeHead:
			colA = append(colA, item)
		case i < 2*distributeHead:
			colB = append(colB, item)
		case (i-2*distributeHead)%2 == 0:
			colA = append(colA, item)
		default:
			colB = append(colB, item)
		}
	}
	return colA, colB
}
