package model

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// atomicNumbers maps element symbols to atomic numbers for the elements
// that show up in small-molecule datasets.
var atomicNumbers = map[string]int{
	"H": 1, "He": 2,
	"Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Br": 35, "I": 53,
}

// ReadXYZ parses a multi-frame XYZ stream into molecules. Each frame is an
// atom count line, a comment line, then one "Symbol x y z" line per atom.
// A reference value is taken from the comment line when it is either a
// bare number or contains an "energy=<number>" token.
func ReadXYZ(r io.Reader) ([]Molecule, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var molecules []Molecule
	line := 0
	for {
		count, ok, err := readAtomCount(scanner, &line)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: line %d: frame truncated before comment line", ErrInput, line+1)
		}
		line++
		reference := parseReference(scanner.Text())

		molecule := Molecule{
			Types:     make([]int, 0, count),
			Coords:    make([][3]float64, 0, count),
			Reference: reference,
		}
		for i := 0; i < count; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("%w: line %d: frame truncated at atom %d of %d", ErrInput, line+1, i+1, count)
			}
			line++
			fields := strings.Fields(scanner.Text())
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: want symbol and 3 coordinates, got %d fields", ErrInput, line, len(fields))
			}
			number, ok := atomicNumbers[fields[0]]
			if !ok {
				return nil, fmt.Errorf("%w: line %d: unknown element symbol %q", ErrInput, line, fields[0])
			}
			var coord [3]float64
			for j := 0; j < 3; j++ {
				value, err := strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: parse coordinate %q", ErrInput, line, fields[j+1])
				}
				coord[j] = value
			}
			molecule.Types = append(molecule.Types, number)
			molecule.Coords = append(molecule.Coords, coord)
		}
		molecules = append(molecules, molecule)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(molecules) == 0 {
		return nil, fmt.Errorf("%w: no frames found", ErrInput)
	}
	return molecules, nil
}

func readAtomCount(scanner *bufio.Scanner, line *int) (int, bool, error) {
	for scanner.Scan() {
		*line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		count, err := strconv.Atoi(text)
		if err != nil {
			return 0, false, fmt.Errorf("%w: line %d: want atom count, got %q", ErrInput, *line, text)
		}
		if count <= 0 {
			return 0, false, fmt.Errorf("%w: line %d: atom count must be positive, got %d", ErrInput, *line, count)
		}
		return count, true, nil
	}
	return 0, false, nil
}

func parseReference(comment string) *float64 {
	trimmed := strings.TrimSpace(comment)
	if value, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return &value
	}
	for _, field := range strings.Fields(trimmed) {
		key, raw, found := strings.Cut(field, "=")
		if !found || !strings.EqualFold(key, "energy") {
			continue
		}
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			return &value
		}
	}
	return nil
}
