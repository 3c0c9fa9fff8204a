package network

import (
	"fmt"

	"pinet/internal/model"
)

// Embed maps categorical atom types to one-hot rows over the configured
// vocabulary, in vocabulary order. A type outside the vocabulary is an
// input error.
func Embed(types []int, vocabulary []int) ([][]float64, error) {
	index := make(map[int]int, len(vocabulary))
	for i, at := range vocabulary {
		index[at] = i
	}
	rows := make([][]float64, len(types))
	for i, at := range types {
		slot, ok := index[at]
		if !ok {
			return nil, fmt.Errorf("%w: atom type %d at row %d is not in the vocabulary", model.ErrInput, at, i)
		}
		row := make([]float64, len(vocabulary))
		row[slot] = 1
		rows[i] = row
	}
	return rows, nil
}
