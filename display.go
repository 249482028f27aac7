package lrutil

import (
	"fmt"
	"io"
	"strings"
)

func (e InvalidToken[L, T, E]) Error() string {
	return fmt.Sprintf("Invalid token at %v", e.Location)
}

func (e UnrecognizedEOF[L, T, E]) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Unrecognized EOF found at %v", e.Location)
	_ = FormatExpected(&sb, e.Expected)
	return sb.String()
}

func (e UnrecognizedToken[L, T, E]) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Unrecognized token `%v` found at %v:%v", e.Token.Value, e.Token.Start, e.Token.End)
	_ = FormatExpected(&sb, e.Expected)
	return sb.String()
}

func (e ExtraToken[L, T, E]) Error() string {
	return fmt.Sprintf("Extra token %v found at %v:%v", e.Token.Value, e.Token.Start, e.Token.End)
}

func (e User[L, T, E]) Error() string {
	return fmt.Sprint(e.Err)
}

func (e InvalidToken[L, T, E]) String() string      { return e.Error() }
func (e UnrecognizedEOF[L, T, E]) String() string   { return e.Error() }
func (e UnrecognizedToken[L, T, E]) String() string { return e.Error() }
func (e ExtraToken[L, T, E]) String() string        { return e.Error() }
func (e User[L, T, E]) String() string              { return e.Error() }

// FormatExpected writes the "Expected one of" clause for expected to w.
// Nothing is written for an empty list. The first item is always introduced
// by "Expected one of", so a single item never gets the " or " separator.
func FormatExpected(w io.Writer, expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for i, name := range expected {
		var sep string
		switch {
		case i == 0:
			sep = "Expected one of "
		case i < len(expected)-1:
			sep = ", "
		default:
			sep = " or "
		}
		if _, err := io.WriteString(w, sep+name); err != nil {
			return err
		}
	}
	return nil
}
