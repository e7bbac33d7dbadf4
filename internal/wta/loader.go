package wta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadInstance parses the line-oriented instance format: n, then n values,
// then n*n probabilities in row-major order. Anything after the matrix is ignored.
func ReadInstance(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	line := 0

	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("line %d: %w", line+1, err)
			}
			return "", fmt.Errorf("line %d: unexpected end of input, expected %s", line+1, what)
		}
		line++
		return strings.TrimSpace(sc.Text()), nil
	}

	s, err := next("n")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("line %d: parse n: %w", line, err)
	}
	if n <= 0 {
		return nil, fmt.Errorf("line %d: n must be > 0 (got %d)", line, n)
	}

	readFloat := func(what string) (float64, error) {
		s, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: parse %s: %w", line, what, err)
		}
		return v, nil
	}

	values := make([]float64, n)
	for i := range values {
		if values[i], err = readFloat(fmt.Sprintf("values[%d]", i)); err != nil {
			return nil, err
		}
	}

	probs := make([][]float64, n)
	for i := range probs {
		probs[i] = make([]float64, n)
		for j := range probs[i] {
			if probs[i][j], err = readFloat(fmt.Sprintf("probabilities[%d][%d]", i, j)); err != nil {
				return nil, err
			}
		}
	}

	return NewInstance(n, values, probs)
}

func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open instance: %w", err)
	}
	defer f.Close()

	inst, err := ReadInstance(f)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", path, err)
	}
	return inst, nil
}

// WriteInstance writes inst in the format ReadInstance accepts.
func WriteInstance(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, inst.N)
	for _, v := range inst.Values {
		fmt.Fprintln(bw, strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, row := range inst.Probabilities {
		for _, p := range row {
			fmt.Fprintln(bw, strconv.FormatFloat(p, 'g', -1, 64))
		}
	}
	return bw.Flush()
}
