package codes

import "math"

// NextCode returns the internal code for the next failure record.
//
// Entries whose internal code cannot be decoded are skipped so partially
// migrated registries can still grow. Codes are never reused or gap-filled.
func (d *Document) NextCode() (uint32, error) {
	values := make([]uint32, 0, len(d.Codes))
	for _, e := range d.Codes {
		v, err := e.Internal.Decode()
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return next(values)
}

// NextCode returns the internal code for the next failure record.
func (r *Registry) NextCode() (uint32, error) {
	values := make([]uint32, 0, r.Len())
	for _, c := range r.Codes {
		values = append(values, c.Internal)
	}
	return next(values)
}

// next is max+1. With no decodable codes at all it starts at 1; otherwise it
// is floored at the first failure code so that a registry holding only the
// success record allocates 0x80000001.
func next(values []uint32) (uint32, error) {
	if len(values) == 0 {
		return 1, nil
	}
	highest := FailureBit
	for _, v := range values {
		if v > highest {
			highest = v
		}
	}
	if highest == math.MaxUint32 {
		return 0, ErrCodeSpaceExhausted
	}
	return highest + 1, nil
}
