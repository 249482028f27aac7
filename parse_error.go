package lrutil

// Kind identifies a ParseError variant.
type Kind int

const (
	KindInvalidToken Kind = iota
	KindUnrecognizedEOF
	KindUnrecognizedToken
	KindExtraToken
	KindUser
)

var kindNames = [...]string{
	KindInvalidToken:      "InvalidToken",
	KindUnrecognizedEOF:   "UnrecognizedEOF",
	KindUnrecognizedToken: "UnrecognizedToken",
	KindExtraToken:        "ExtraToken",
	KindUser:              "User",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + itoa(int(k)) + ")"
}

// Spanned is a token together with the locations of its first and last
// position.
type Spanned[L, T any] struct {
	Start L
	Value T
	End   L
}

// ParseError is the failure value produced by a generated parser. It is a
// closed set: the only implementations are InvalidToken, UnrecognizedEOF,
// UnrecognizedToken, ExtraToken and User.
type ParseError[L, T, E any] interface {
	error
	Kind() Kind
	sealed(L, T, E)
}

// InvalidToken reports a token the lexer could not classify.
type InvalidToken[L, T, E any] struct {
	Location L
}

// UnrecognizedEOF reports input that ended where a token was required.
type UnrecognizedEOF[L, T, E any] struct {
	// Location is the end of the final token.
	Location L
	// Expected holds terminal names in grammar order. They come straight
	// from the grammar and may not be suitable for end users.
	Expected []string
}

// UnrecognizedToken reports a token that is not valid at its position.
type UnrecognizedToken[L, T, E any] struct {
	Token    Spanned[L, T]
	Expected []string
}

// ExtraToken reports a token found after a complete parse.
type ExtraToken[L, T, E any] struct {
	Token Spanned[L, T]
}

// User carries a caller-defined error, typically from the lexer.
type User[L, T, E any] struct {
	Err E
}

func (InvalidToken[L, T, E]) Kind() Kind      { return KindInvalidToken }
func (UnrecognizedEOF[L, T, E]) Kind() Kind   { return KindUnrecognizedEOF }
func (UnrecognizedToken[L, T, E]) Kind() Kind { return KindUnrecognizedToken }
func (ExtraToken[L, T, E]) Kind() Kind        { return KindExtraToken }
func (User[L, T, E]) Kind() Kind              { return KindUser }

func (InvalidToken[L, T, E]) sealed(L, T, E)      {}
func (UnrecognizedEOF[L, T, E]) sealed(L, T, E)   {}
func (UnrecognizedToken[L, T, E]) sealed(L, T, E) {}
func (ExtraToken[L, T, E]) sealed(L, T, E)        {}
func (User[L, T, E]) sealed(L, T, E)              {}

// Unwrap returns Err when E is an error, so errors.Is and errors.As reach
// lexer-level failures through the parse error.
func (u User[L, T, E]) Unwrap() error {
	if err, ok := any(u.Err).(error); ok {
		return err
	}
	return nil
}

// MapLocation converts every location in e, including both ends of token
// spans, with f.
func MapLocation[L, LL, T, E any](e ParseError[L, T, E], f func(L) LL) ParseError[LL, T, E] {
	return mapParts(e, f, identity[T], identity[E])
}

// MapToken converts the token payload of e with f. Variants without a
// token are carried over unchanged.
func MapToken[L, T, TT, E any](e ParseError[L, T, E], f func(T) TT) ParseError[L, TT, E] {
	return mapParts(e, identity[L], f, identity[E])
}

// MapError converts the user error of e with f. Only the User variant
// carries one.
func MapError[L, T, E, EE any](e ParseError[L, T, E], f func(E) EE) ParseError[L, T, EE] {
	return mapParts(e, identity[L], identity[T], f)
}

func mapParts[L, LL, T, TT, E, EE any](
	e ParseError[L, T, E],
	fl func(L) LL,
	ft func(T) TT,
	fe func(E) EE,
) ParseError[LL, TT, EE] {
	switch v := e.(type) {
	case InvalidToken[L, T, E]:
		return InvalidToken[LL, TT, EE]{Location: fl(v.Location)}
	case UnrecognizedEOF[L, T, E]:
		return UnrecognizedEOF[LL, TT, EE]{Location: fl(v.Location), Expected: v.Expected}
	case UnrecognizedToken[L, T, E]:
		return UnrecognizedToken[LL, TT, EE]{Token: mapSpanned(v.Token, fl, ft), Expected: v.Expected}
	case ExtraToken[L, T, E]:
		return ExtraToken[LL, TT, EE]{Token: mapSpanned(v.Token, fl, ft)}
	case User[L, T, E]:
		return User[LL, TT, EE]{Err: fe(v.Err)}
	default:
		panic(unknownVariant(e))
	}
}

func mapSpanned[L, LL, T, TT any](s Spanned[L, T], fl func(L) LL, ft func(T) TT) Spanned[LL, TT] {
	return Spanned[LL, TT]{Start: fl(s.Start), Value: ft(s.Value), End: fl(s.End)}
}

// Clone returns a copy of e that shares no Expected backing array with it.
func Clone[L, T, E any](e ParseError[L, T, E]) ParseError[L, T, E] {
	switch v := e.(type) {
	case UnrecognizedEOF[L, T, E]:
		v.Expected = cloneStrings(v.Expected)
		return v
	case UnrecognizedToken[L, T, E]:
		v.Expected = cloneStrings(v.Expected)
		return v
	case InvalidToken[L, T, E], ExtraToken[L, T, E], User[L, T, E]:
		return v
	default:
		panic(unknownVariant(e))
	}
}

// ExpectedOf returns the expected terminals carried by e, or nil for
// variants that have none.
func ExpectedOf[L, T, E any](e ParseError[L, T, E]) []string {
	switch v := e.(type) {
	case UnrecognizedEOF[L, T, E]:
		return v.Expected
	case UnrecognizedToken[L, T, E]:
		return v.Expected
	default:
		return nil
	}
}

func identity[X any](x X) X { return x }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}

func unknownVariant(e any) string {
	if e == nil {
		return "lrutil: nil ParseError"
	}
	return "lrutil: unknown ParseError variant"
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := false
	if v < 0 {
		neg = true
		v = -v
	}
	var buf [20]byte
	idx := len(buf)
	for v > 0 {
		idx--
		buf[idx] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		idx--
		buf[idx] = '-'
	}
	return string(buf[idx:])
}
