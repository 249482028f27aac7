package lrutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type offset int

func (o offset) String() string { return fmt.Sprintf("@%d", int(o)) }

func TestErrorRendering(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unrecognized token with three expected",
			err: UnrecognizedToken[int, string, string]{
				Token:    Spanned[int, string]{Start: 1, Value: "t0", End: 2},
				Expected: []string{"t1", "t2", "t3"},
			},
			want: "Unrecognized token `t0` found at 1:2\nExpected one of t1, t2 or t3",
		},
		{
			name: "unrecognized token without expected",
			err:  UnrecognizedToken[int, string, string]{Token: Spanned[int, string]{Start: 1, Value: "t0", End: 2}},
			want: "Unrecognized token `t0` found at 1:2",
		},
		{
			name: "eof without expected",
			err:  UnrecognizedEOF[int, string, string]{Location: 12, Expected: []string{}},
			want: "Unrecognized EOF found at 12",
		},
		{
			name: "eof with single expected",
			err:  UnrecognizedEOF[int, string, string]{Location: 12, Expected: []string{"a"}},
			want: "Unrecognized EOF found at 12\nExpected one of a",
		},
		{
			name: "eof with two expected",
			err:  UnrecognizedEOF[int, string, string]{Location: 12, Expected: []string{"a", "b"}},
			want: "Unrecognized EOF found at 12\nExpected one of a or b",
		},
		{
			name: "extra token",
			err:  ExtraToken[int, string, string]{Token: Spanned[int, string]{Start: 3, Value: "x", End: 4}},
			want: "Extra token x found at 3:4",
		},
		{
			name: "invalid token",
			err:  InvalidToken[int, string, string]{Location: 5},
			want: "Invalid token at 5",
		},
		{
			name: "location with String method",
			err:  InvalidToken[offset, string, string]{Location: 5},
			want: "Invalid token at @5",
		},
		{
			name: "user error string",
			err:  User[int, string, string]{Err: "unterminated string\nat line 3"},
			want: "unterminated string\nat line 3",
		},
		{
			name: "user error value",
			err:  User[int, string, error]{Err: errors.New("number out of range")},
			want: "number out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.Equal(t, tt.want, fmt.Sprint(tt.err))
			assert.Equal(t, tt.err.Error(), tt.err.Error())
		})
	}
}

func TestFormatExpected(t *testing.T) {
	tests := []struct {
		expected []string
		want     string
	}{
		{nil, ""},
		{[]string{}, ""},
		{[]string{"a"}, "\nExpected one of a"},
		{[]string{"a", "b"}, "\nExpected one of a or b"},
		{[]string{"a", "b", "c", "d"}, "\nExpected one of a, b, c or d"},
		{[]string{`"("`, `"let"`, "NUMBER"}, "\nExpected one of \"(\", \"let\" or NUMBER"},
	}
	for _, tt := range tests {
		var sb strings.Builder
		err := FormatExpected(&sb, tt.expected)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, sb.String(), "expected=%q", tt.expected)
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after == 0 {
		return 0, errors.New("sink closed")
	}
	w.after--
	return len(p), nil
}

func TestFormatExpectedReturnsWriteError(t *testing.T) {
	assert.EqualError(t, FormatExpected(&failingWriter{}, []string{"a"}), "sink closed")
	assert.EqualError(t, FormatExpected(&failingWriter{after: 2}, []string{"a", "b", "c"}), "sink closed")
	assert.NoError(t, FormatExpected(&failingWriter{}, nil))
}

func TestFormatExpectedDoesNotSortOrTruncate(t *testing.T) {
	names := make([]string, 0, 50)
	for i := 50; i > 0; i-- {
		names = append(names, fmt.Sprintf("t%d", i))
	}
	var sb strings.Builder
	assert.NoError(t, FormatExpected(&sb, names))
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "\nExpected one of t50, t49, "))
	assert.True(t, strings.HasSuffix(out, ", t2 or t1"))
}
