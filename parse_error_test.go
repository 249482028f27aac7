package lrutil

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pe = ParseError[int, string, string]

func sampleErrors() []pe {
	return []pe{
		InvalidToken[int, string, string]{Location: 7},
		UnrecognizedEOF[int, string, string]{Location: 9, Expected: []string{"a", "b"}},
		UnrecognizedEOF[int, string, string]{Location: 9},
		UnrecognizedToken[int, string, string]{Token: Spanned[int, string]{Start: 1, Value: "t0", End: 2}, Expected: []string{"t1", "t2", "t3"}},
		ExtraToken[int, string, string]{Token: Spanned[int, string]{Start: 3, Value: "x", End: 4}},
		User[int, string, string]{Err: "bad escape"},
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidToken", KindInvalidToken.String())
	assert.Equal(t, "User", KindUser.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Equal(t, "Kind(-1)", Kind(-1).String())
}

func TestMapLocationConvertsEveryLocation(t *testing.T) {
	double := func(l int) int { return l * 2 }

	got := MapLocation(pe(UnrecognizedToken[int, string, string]{
		Token:    Spanned[int, string]{Start: 1, Value: "t0", End: 2},
		Expected: []string{"t1"},
	}), double)
	assert.Equal(t, UnrecognizedToken[int, string, string]{
		Token:    Spanned[int, string]{Start: 2, Value: "t0", End: 4},
		Expected: []string{"t1"},
	}, got)

	got = MapLocation(pe(ExtraToken[int, string, string]{Token: Spanned[int, string]{Start: 3, Value: "x", End: 4}}), double)
	assert.Equal(t, ExtraToken[int, string, string]{Token: Spanned[int, string]{Start: 6, Value: "x", End: 8}}, got)

	got = MapLocation(pe(InvalidToken[int, string, string]{Location: 5}), double)
	assert.Equal(t, InvalidToken[int, string, string]{Location: 10}, got)

	got = MapLocation(pe(UnrecognizedEOF[int, string, string]{Location: 5, Expected: []string{"a"}}), double)
	assert.Equal(t, UnrecognizedEOF[int, string, string]{Location: 10, Expected: []string{"a"}}, got)

	got = MapLocation(pe(User[int, string, string]{Err: "boom"}), double)
	assert.Equal(t, User[int, string, string]{Err: "boom"}, got)
}

func TestMapLocationChangesLocationType(t *testing.T) {
	got := MapLocation(pe(InvalidToken[int, string, string]{Location: 42}), strconv.Itoa)
	v, ok := got.(InvalidToken[string, string, string])
	require.True(t, ok, "got %T", got)
	assert.Equal(t, "42", v.Location)
}

func TestMapTokenOnlyTouchesTokens(t *testing.T) {
	upper := strings.ToUpper

	got := MapToken(pe(UnrecognizedToken[int, string, string]{
		Token: Spanned[int, string]{Start: 1, Value: "t0", End: 2},
	}), upper)
	assert.Equal(t, UnrecognizedToken[int, string, string]{Token: Spanned[int, string]{Start: 1, Value: "T0", End: 2}}, got)

	got = MapToken(pe(User[int, string, string]{Err: "lower"}), upper)
	assert.Equal(t, User[int, string, string]{Err: "lower"}, got)

	lengths := MapToken(pe(ExtraToken[int, string, string]{Token: Spanned[int, string]{Start: 3, Value: "xyz", End: 6}}), func(s string) int { return len(s) })
	assert.Equal(t, ExtraToken[int, int, string]{Token: Spanned[int, int]{Start: 3, Value: 3, End: 6}}, lengths)
}

func TestMapErrorOnlyTouchesUser(t *testing.T) {
	wrap := func(s string) error { return errors.New("lex: " + s) }

	got := MapError(pe(User[int, string, string]{Err: "bad escape"}), wrap)
	u, ok := got.(User[int, string, error])
	require.True(t, ok, "got %T", got)
	assert.EqualError(t, u.Err, "lex: bad escape")

	got = MapError(pe(InvalidToken[int, string, string]{Location: 1}), wrap)
	assert.Equal(t, InvalidToken[int, string, error]{Location: 1}, got)
}

func TestIdentityMapsPreserveValue(t *testing.T) {
	for _, e := range sampleErrors() {
		t.Run(e.Kind().String(), func(t *testing.T) {
			assert.True(t, Equal(e, MapLocation(e, identity[int])))
			assert.True(t, Equal(e, MapToken(e, identity[string])))
			assert.True(t, Equal(e, MapError(e, identity[string])))
		})
	}
}

func TestProjectionsAreIndependent(t *testing.T) {
	f := func(l int) int { return l + 100 }
	g := func(s string) string { return "<" + s + ">" }
	h := func(s string) string { return strings.ToUpper(s) }

	for _, e := range sampleErrors() {
		t.Run(e.Kind().String(), func(t *testing.T) {
			lte := MapError(MapToken(MapLocation(e, f), g), h)
			etl := MapLocation(MapToken(MapError(e, h), g), f)
			tle := MapError(MapLocation(MapToken(e, g), f), h)
			assert.True(t, Equal(lte, etl))
			assert.True(t, Equal(lte, tle))
		})
	}
}

func TestProjectionsKeepVariantAndRoundTrip(t *testing.T) {
	for _, e := range sampleErrors() {
		t.Run(e.Kind().String(), func(t *testing.T) {
			shifted := MapLocation(e, func(l int) int { return l + 10 })
			assert.Equal(t, e.Kind(), shifted.Kind())

			back := MapLocation(shifted, func(l int) int { return l - 10 })
			assert.True(t, Equal(e, back))

			asText := MapLocation(e, strconv.Itoa)
			assert.Equal(t, e.Kind(), asText.Kind())
			restored := MapLocation(asText, func(s string) int {
				n, err := strconv.Atoi(s)
				require.NoError(t, err)
				return n
			})
			assert.True(t, Equal(e, restored))
		})
	}
}

func TestMapPanicsOnNil(t *testing.T) {
	assert.PanicsWithValue(t, "lrutil: nil ParseError", func() {
		MapLocation[int, int, string, string](nil, identity[int])
	})
}

func TestUserUnwrap(t *testing.T) {
	sentinel := errors.New("unterminated comment")
	var err error = User[int, string, error]{Err: sentinel}
	assert.ErrorIs(t, err, sentinel)

	assert.Nil(t, User[int, string, string]{Err: "text"}.Unwrap())
}

func TestCloneDetachesExpected(t *testing.T) {
	orig := UnrecognizedEOF[int, string, string]{Location: 1, Expected: []string{"a", "b"}}
	cloned := Clone(pe(orig)).(UnrecognizedEOF[int, string, string])
	cloned.Expected[0] = "z"
	assert.Equal(t, []string{"a", "b"}, orig.Expected)

	assert.Nil(t, Clone(pe(UnrecognizedEOF[int, string, string]{Location: 1})).(UnrecognizedEOF[int, string, string]).Expected)
	assert.Equal(t, pe(User[int, string, string]{Err: "u"}), Clone(pe(User[int, string, string]{Err: "u"})))
}

func TestExpectedOf(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ExpectedOf(sampleErrors()[1]))
	assert.Equal(t, []string{"t1", "t2", "t3"}, ExpectedOf(sampleErrors()[3]))
	assert.Nil(t, ExpectedOf(sampleErrors()[0]))
	assert.Nil(t, ExpectedOf(sampleErrors()[5]))
}
