package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ReadCSV reads a header row followed by numeric rows. The column named target
// becomes the target vector; an empty target selects the last column.
func ReadCSV(r io.Reader, target string) (Table, []float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, nil, ErrEmptyInput
	}
	if err != nil {
		return Table{}, nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	targetIdx := len(header) - 1
	if target != "" {
		targetIdx = slices.Index(header, target)
		if targetIdx < 0 {
			return Table{}, nil, fmt.Errorf("%w: target column %q not in header %v", ErrFeatureNames, target, header)
		}
	}
	if len(header) < 2 {
		return Table{}, nil, fmt.Errorf("%w: need at least one feature column and a target", ErrEmptyInput)
	}

	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i != targetIdx {
			columns = append(columns, name)
		}
	}
	if err := CheckFeatures(columns, len(columns)); err != nil {
		return Table{}, nil, err
	}

	var data, y []float64
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, nil, err
		}
		line++
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Table{}, nil, fmt.Errorf("%w: line %d column %q: %v", ErrTypeMismatch, line, header[i], err)
			}
			if i == targetIdx {
				y = append(y, v)
			} else {
				data = append(data, v)
			}
		}
	}
	if len(y) == 0 {
		return Table{}, nil, ErrEmptyInput
	}

	table := Table{Columns: columns, Data: mat.NewDense(len(y), len(columns), data)}
	return table, y, nil
}

func LoadCSV(path, target string) (Table, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, nil, err
	}
	defer f.Close()
	return ReadCSV(f, target)
}
