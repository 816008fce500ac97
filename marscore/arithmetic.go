package marscore

import "github.com/jyane/marscore/emuerr"

// offset computes (base + delta) mod size, accepting a signed 64-bit delta.
// Negative deltas are normalized into [0, size) by repeated addition of size
// before the final reduction, matching the spec's offset() contract.
func offset(base uint32, delta int64, size uint32) (uint32, error) {
	if size == 0 {
		return 0, emuerr.NewInternalError("offset: core size is zero")
	}
	d := delta
	for d < 0 {
		d += int64(size)
	}
	sum := d + int64(base)
	normalized := sum % int64(size)
	if normalized < 0 || normalized >= int64(size) {
		return 0, emuerr.NewInternalError("offset: normalized value %d out of range for size %d", normalized, size)
	}
	return uint32(normalized), nil
}

// add computes (x + y) mod size.
func add(x, y, size uint32) (uint32, error) {
	return offset(x, int64(y), size)
}

// sub computes (x - y) mod size, never producing a negative intermediate.
func sub(x, y, size uint32) (uint32, error) {
	return offset(x, -int64(y), size)
}

// mul computes (x * y) mod size, widening the intermediate product to 64
// bits to avoid overflow.
func mul(x, y, size uint32) (uint32, error) {
	if size == 0 {
		return 0, emuerr.NewInternalError("mul: core size is zero")
	}
	product := uint64(x) * uint64(y)
	result := product % uint64(size)
	if result >= uint64(size) {
		return 0, emuerr.NewInternalError("mul: result %d out of range for size %d", result, size)
	}
	return uint32(result), nil
}

// div computes x / y mod size. It is partial: ok is false when y == 0 and
// no result is produced, per the spec's division-by-zero guard.
func div(x, y uint32) (result uint32, ok bool) {
	if y == 0 {
		return 0, false
	}
	return x / y, true
}

// mod computes x % y mod size. Partial in the same way as div.
func mod(x, y uint32) (result uint32, ok bool) {
	if y == 0 {
		return 0, false
	}
	return x % y, true
}

// inc computes (x + 1) mod size.
func inc(x, size uint32) (uint32, error) {
	return add(x, 1, size)
}

// dec computes (x - 1) mod size.
func dec(x, size uint32) (uint32, error) {
	return sub(x, 1, size)
}
