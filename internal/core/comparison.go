package core

import (
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

const (
	SEQUENCE_HASH_SEED       = 1
	SEQUENCE_HASH_MULTIPLIER = 31

	HASH_COMBINATION_PRIME = 1099511628211
	MAX_HASH_DEPTH         = 16
)

// An Equaler defines its own equality, Equal should be reflexive and symmetric.
type Equaler interface {
	Equal(other any) bool
}

// A Hasher defines its own hash, two elements that are equal should have the same hash.
type Hasher interface {
	Hash() uint64
}

// ElementsEqual reports whether two elements are equal: nil is only equal to nil, Equaler implementations
// decide for themselves, values of comparable types are compared with == and other values are deeply compared.
func ElementsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if equaler, ok := a.(Equaler); ok {
		return equaler.Equal(b)
	}

	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		//comparing interfaces holding values of different types is fine.
		return a == b
	}

	return reflect.DeepEqual(a, b)
}

// ElementHash returns the hash of an element, nil has a hash of zero.
func ElementHash(e any) uint64 {
	switch v := e.(type) {
	case nil:
		return 0
	case Hasher:
		return v.Hash()
	case string:
		return xxhash.Sum64String(v)
	case []byte:
		return xxhash.Sum64(v)
	case bool:
		if v {
			return 1231
		}
		return 1237
	case int:
		return uint64(v)
	case int8:
		return uint64(v)
	case int16:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case float32:
		if v == 0 { //-0 == +0
			return 0
		}
		return uint64(math.Float32bits(v))
	case float64:
		if v == 0 {
			return 0
		}
		return math.Float64bits(v)
	default:
		return hashValue(reflect.ValueOf(e), 0)
	}
}

// hashValue computes a hash that is equal for values that are == or deeply equal (reflect.DeepEqual):
// pointers and interfaces are followed, map entries are folded in an order-independent way and -0 hashes like +0.
// Values nested deeper than MAX_HASH_DEPTH do not contribute to the hash, this bounds the walk of cyclic values.
func hashValue(v reflect.Value, depth int) uint64 {
	if depth > MAX_HASH_DEPTH || !v.IsValid() {
		return 0
	}
	depth++

	h := uint64(v.Kind())

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return combineHashes(h, 1231)
		}
		return combineHashes(h, 1237)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return combineHashes(h, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return combineHashes(h, v.Uint())
	case reflect.Float32, reflect.Float64:
		return combineHashes(h, floatBits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return combineHashes(combineHashes(h, floatBits(real(c))), floatBits(imag(c)))
	case reflect.String:
		return combineHashes(h, xxhash.Sum64String(v.String()))
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return h
		}
		return combineHashes(h, hashValue(v.Elem(), depth))
	case reflect.Slice, reflect.Array:
		h = combineHashes(h, uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			h = combineHashes(h, hashValue(v.Index(i), depth))
		}
		return h
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			h = combineHashes(h, hashValue(v.Field(i), depth))
		}
		return h
	case reflect.Map:
		var entries uint64
		iter := v.MapRange()
		for iter.Next() {
			entries += combineHashes(hashValue(iter.Key(), depth), hashValue(iter.Value(), depth))
		}
		return combineHashes(combineHashes(h, uint64(v.Len())), entries)
	case reflect.Chan, reflect.UnsafePointer:
		//compared by identity.
		return combineHashes(h, uint64(v.Pointer()))
	default:
		//functions are only deeply equal if both are nil.
		return h
	}
}

func combineHashes(h, x uint64) uint64 {
	return h*HASH_COMBINATION_PRIME + x
}

func floatBits(f float64) uint64 {
	if f == 0 { //-0 == +0
		return 0
	}
	return math.Float64bits(f)
}
