package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// Complex is a constraint that permits any complex numeric type.
// Complex numbers have no total order, so they can be summed
// but never used as a key.
type Complex interface {
	~complex64 | ~complex128
}

// OrderedKey
// byte => ~uint8
// Float NaN keys are allowed, every NaN is the same key and
// it sorts before all the other values.
type OrderedKey interface {
	Integer | Float | ~string
}

// Addable permits every type supporting the + operator.
// Values are copied on assignment, so each fold step owns
// its own accumulator.
type Addable interface {
	Integer | Float | Complex | ~string
}

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j (i-j == 0, return 0)
//  2. i > j (i-j > 0, return 1), turn to right part.
//  3. i < j (i-j < 0, return -1), turn to left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// AscComparator orders keys from the smallest to the largest.
func AscComparator[K OrderedKey](i, j K) int64 {
	// Only a float NaN is not equal to itself.
	if iNaN, jNaN := i != i, j != j; iNaN || jNaN {
		if iNaN && jNaN {
			return 0
		} else if iNaN {
			return -1
		}
		return 1
	}
	if i == j {
		return 0
	} else if i < j {
		return -1
	}
	return 1
}

// DescComparator orders keys from the largest to the smallest.
func DescComparator[K OrderedKey](i, j K) int64 {
	return -AscComparator[K](i, j)
}
