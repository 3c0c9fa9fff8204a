package network

import (
	"errors"
	"testing"

	"pinet/internal/model"
)

func TestEmbedOneHot(t *testing.T) {
	rows, err := Embed([]int{6, 1, 8, 1}, []int{1, 6, 7, 8})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	want := [][]float64{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{1, 0, 0, 0},
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Fatalf("unexpected value at (%d,%d): got=%v want=%v", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestEmbedUnknownType(t *testing.T) {
	_, err := Embed([]int{1, 2}, []int{1, 6})
	if !errors.Is(err, model.ErrInput) {
		t.Fatalf("expected input error, got: %v", err)
	}
}
