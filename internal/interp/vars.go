package interp

import "github.com/cwbudde/go-basic/internal/errors"

// variable is one bucket in the variable table. A bucket is keyed by the
// first two characters of the source identifier, uppercased, plus the string
// flag: A, A1, AB and AX9 all land in the same numeric bucket when their
// first two characters coincide. This matches the historical dialect.
//
// A bucket holds either a scalar or an array; array access on a scalar
// bucket promotes it in place, losing the scalar.
type variable struct {
	name1    byte
	name2    byte
	isString bool
	isArray  bool
	scalar   Value
	arr      []Value
}

// varTable is a flat table scanned linearly; at this scale the constant
// factor dwarfs the cost of hashing.
type varTable struct {
	vars []*variable
}

// splitName reduces a source identifier to its two-byte uppercase key and
// string flag. A one-character name pads with a space.
func splitName(name string) (n1, n2 byte, isString bool) {
	ln := len(name)
	if ln > 0 && name[ln-1] == '$' {
		isString = true
		ln--
	}
	n1, n2 = ' ', ' '
	if ln > 0 {
		n1 = upper(name[0])
	}
	if ln > 1 {
		n2 = upper(name[1])
	}
	return n1, n2, isString
}

// findOrCreate looks up a bucket, creating it with a zero scalar (or an
// array of arraySize cells) on first reference. On an existing bucket,
// wantArray promotes a scalar in place and grows a too-small array,
// zero-filling new cells.
func (t *varTable) findOrCreate(n1, n2 byte, isString, wantArray bool, arraySize int) (*variable, error) {
	for _, v := range t.vars {
		if v.name1 == n1 && v.name2 == n2 && v.isString == isString {
			if wantArray && !v.isArray {
				v.isArray = true
				v.arr = makeCells(arraySize, isString)
			} else if wantArray && arraySize > len(v.arr) {
				v.arr = growCells(v.arr, arraySize, isString)
			}
			return v, nil
		}
	}

	if len(t.vars) >= MaxVars {
		return nil, errors.New(errors.ResourceExhausted, "variable table full")
	}

	v := &variable{
		name1:    n1,
		name2:    n2,
		isString: isString,
		isArray:  wantArray,
		scalar:   zeroValue(isString),
	}
	if wantArray {
		v.arr = makeCells(arraySize, isString)
	}
	t.vars = append(t.vars, v)
	return v, nil
}

func makeCells(n int, isString bool) []Value {
	cells := make([]Value, n)
	for i := range cells {
		cells[i] = zeroValue(isString)
	}
	return cells
}

func growCells(cells []Value, n int, isString bool) []Value {
	for len(cells) < n {
		cells = append(cells, zeroValue(isString))
	}
	return cells
}

// varRef addresses one storage cell: a bucket's scalar (idx < 0) or an array
// cell. Loads and stores resolve through the bucket at call time, so array
// growth between reference and store stays coherent.
type varRef struct {
	v   *variable
	idx int
}

func (r varRef) isArrayCell() bool {
	return r.idx >= 0
}

func (r varRef) load() Value {
	if r.idx < 0 {
		return r.v.scalar
	}
	return r.v.arr[r.idx]
}

func (r varRef) store(val Value) {
	if r.idx < 0 {
		r.v.scalar = val
		return
	}
	r.v.arr[r.idx] = val
}
