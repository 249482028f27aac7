package lrutil

// ErrorRecovery pairs an error with the tokens the parser dropped to
// resynchronize after it, in the order they were consumed.
type ErrorRecovery[L, T, E any] struct {
	Error         ParseError[L, T, E]
	DroppedTokens []Spanned[L, T]
}

// CloneRecovery copies r, including its dropped tokens and the expected
// list of its error.
func CloneRecovery[L, T, E any](r ErrorRecovery[L, T, E]) ErrorRecovery[L, T, E] {
	out := ErrorRecovery[L, T, E]{Error: Clone(r.Error)}
	if r.DroppedTokens != nil {
		out.DroppedTokens = append(make([]Spanned[L, T], 0, len(r.DroppedTokens)), r.DroppedTokens...)
	}
	return out
}

// MapRecoveryLocation applies MapLocation to the error and to every dropped
// token span.
func MapRecoveryLocation[L, LL, T, E any](r ErrorRecovery[L, T, E], f func(L) LL) ErrorRecovery[LL, T, E] {
	return mapRecovery(r, f, identity[T], identity[E])
}

// MapRecoveryToken applies MapToken to the error and to every dropped token.
func MapRecoveryToken[L, T, TT, E any](r ErrorRecovery[L, T, E], f func(T) TT) ErrorRecovery[L, TT, E] {
	return mapRecovery(r, identity[L], f, identity[E])
}

// MapRecoveryError applies MapError to the recovered error.
func MapRecoveryError[L, T, E, EE any](r ErrorRecovery[L, T, E], f func(E) EE) ErrorRecovery[L, T, EE] {
	return mapRecovery(r, identity[L], identity[T], f)
}

func mapRecovery[L, LL, T, TT, E, EE any](
	r ErrorRecovery[L, T, E],
	fl func(L) LL,
	ft func(T) TT,
	fe func(E) EE,
) ErrorRecovery[LL, TT, EE] {
	out := ErrorRecovery[LL, TT, EE]{Error: mapParts(r.Error, fl, ft, fe)}
	if r.DroppedTokens != nil {
		out.DroppedTokens = make([]Spanned[LL, TT], len(r.DroppedTokens))
		for i, tok := range r.DroppedTokens {
			out.DroppedTokens[i] = mapSpanned(tok, fl, ft)
		}
	}
	return out
}
