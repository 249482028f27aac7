package lrutil

import (
	"cmp"
	"slices"
)

// Equal reports whether a and b are the same variant with equal fields.
func Equal[L, T, E comparable](a, b ParseError[L, T, E]) bool {
	return EqualFunc(a, b, eq[L], eq[T], eq[E])
}

// EqualFunc is like Equal but compares payloads with the given functions.
func EqualFunc[L, T, E any](
	a, b ParseError[L, T, E],
	eqL func(L, L) bool,
	eqT func(T, T) bool,
	eqE func(E, E) bool,
) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case InvalidToken[L, T, E]:
		y := b.(InvalidToken[L, T, E])
		return eqL(x.Location, y.Location)
	case UnrecognizedEOF[L, T, E]:
		y := b.(UnrecognizedEOF[L, T, E])
		return eqL(x.Location, y.Location) && slices.Equal(x.Expected, y.Expected)
	case UnrecognizedToken[L, T, E]:
		y := b.(UnrecognizedToken[L, T, E])
		return equalSpanned(x.Token, y.Token, eqL, eqT) && slices.Equal(x.Expected, y.Expected)
	case ExtraToken[L, T, E]:
		y := b.(ExtraToken[L, T, E])
		return equalSpanned(x.Token, y.Token, eqL, eqT)
	case User[L, T, E]:
		y := b.(User[L, T, E])
		return eqE(x.Err, y.Err)
	default:
		panic(unknownVariant(a))
	}
}

// Compare orders parse errors by variant, in declaration order, then by
// their fields in declaration order. Expected lists compare
// lexicographically.
func Compare[L, T, E cmp.Ordered](a, b ParseError[L, T, E]) int {
	return CompareFunc(a, b, cmp.Compare[L], cmp.Compare[T], cmp.Compare[E])
}

// CompareFunc is like Compare but orders payloads with the given functions.
func CompareFunc[L, T, E any](
	a, b ParseError[L, T, E],
	cmpL func(L, L) int,
	cmpT func(T, T) int,
	cmpE func(E, E) int,
) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case InvalidToken[L, T, E]:
		y := b.(InvalidToken[L, T, E])
		return cmpL(x.Location, y.Location)
	case UnrecognizedEOF[L, T, E]:
		y := b.(UnrecognizedEOF[L, T, E])
		if c := cmpL(x.Location, y.Location); c != 0 {
			return c
		}
		return slices.Compare(x.Expected, y.Expected)
	case UnrecognizedToken[L, T, E]:
		y := b.(UnrecognizedToken[L, T, E])
		if c := compareSpanned(x.Token, y.Token, cmpL, cmpT); c != 0 {
			return c
		}
		return slices.Compare(x.Expected, y.Expected)
	case ExtraToken[L, T, E]:
		y := b.(ExtraToken[L, T, E])
		return compareSpanned(x.Token, y.Token, cmpL, cmpT)
	case User[L, T, E]:
		y := b.(User[L, T, E])
		return cmpE(x.Err, y.Err)
	default:
		panic(unknownVariant(a))
	}
}

// EqualRecovery reports whether a and b hold equal errors and the same
// dropped tokens in the same order.
func EqualRecovery[L, T, E comparable](a, b ErrorRecovery[L, T, E]) bool {
	if !Equal(a.Error, b.Error) {
		return false
	}
	return slices.Equal(a.DroppedTokens, b.DroppedTokens)
}

// CompareRecovery orders recoveries by error, then by dropped tokens.
func CompareRecovery[L, T, E cmp.Ordered](a, b ErrorRecovery[L, T, E]) int {
	return CompareRecoveryFunc(a, b, cmp.Compare[L], cmp.Compare[T], cmp.Compare[E])
}

// CompareRecoveryFunc is like CompareRecovery with caller-supplied payload
// ordering.
func CompareRecoveryFunc[L, T, E any](
	a, b ErrorRecovery[L, T, E],
	cmpL func(L, L) int,
	cmpT func(T, T) int,
	cmpE func(E, E) int,
) int {
	if c := CompareFunc(a.Error, b.Error, cmpL, cmpT, cmpE); c != 0 {
		return c
	}
	return slices.CompareFunc(a.DroppedTokens, b.DroppedTokens, func(x, y Spanned[L, T]) int {
		return compareSpanned(x, y, cmpL, cmpT)
	})
}

func equalSpanned[L, T any](a, b Spanned[L, T], eqL func(L, L) bool, eqT func(T, T) bool) bool {
	return eqL(a.Start, b.Start) && eqT(a.Value, b.Value) && eqL(a.End, b.End)
}

func compareSpanned[L, T any](a, b Spanned[L, T], cmpL func(L, L) int, cmpT func(T, T) int) int {
	if c := cmpL(a.Start, b.Start); c != 0 {
		return c
	}
	if c := cmpT(a.Value, b.Value); c != 0 {
		return c
	}
	return cmpL(a.End, b.End)
}

func eq[X comparable](a, b X) bool { return a == b }
