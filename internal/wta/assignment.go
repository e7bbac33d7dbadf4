package wta

import "fmt"

// Assignment maps target i to weapon Assignment[i].
type Assignment []int

func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

func ValidateAssignment(a Assignment, n int) error {
	if len(a) != n {
		return fmt.Errorf("assignment length must be %d (got %d)", n, len(a))
	}
	for i, w := range a {
		if w < 0 || w >= n {
			return fmt.Errorf("assignment[%d]=%d out of range [0,%d)", i, w, n)
		}
	}
	return nil
}
