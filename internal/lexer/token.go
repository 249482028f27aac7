package lexer

import "github.com/mehditeymorian/lrutil"

// Kind represents a token kind. Terminal kinds are declared in grammar
// order; expected-token lists follow this order.
type Kind int

const (
	// special
	EOF Kind = iota
	ILLEGAL
	ERROR

	// literals
	IDENT
	NUMBER

	// keywords
	KW_LET
	KW_PRINT

	// punct
	ASSIGN    // =
	SEMICOLON // ;
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	LPAREN    // (
	RPAREN    // )
)

var kindNames = [...]string{
	EOF:       "EOF",
	ILLEGAL:   "ILLEGAL",
	ERROR:     "ERROR",
	IDENT:     "IDENT",
	NUMBER:    "NUMBER",
	KW_LET:    "KW_LET",
	KW_PRINT:  "KW_PRINT",
	ASSIGN:    "ASSIGN",
	SEMICOLON: "SEMICOLON",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	PERCENT:   "PERCENT",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
}

// terminalNames are the names used in expected-token lists, as a grammar
// would spell them.
var terminalNames = [...]string{
	IDENT:     "IDENT",
	NUMBER:    "NUMBER",
	KW_LET:    `"let"`,
	KW_PRINT:  `"print"`,
	ASSIGN:    `"="`,
	SEMICOLON: `";"`,
	PLUS:      `"+"`,
	MINUS:     `"-"`,
	STAR:      `"*"`,
	SLASH:     `"/"`,
	PERCENT:   `"%"`,
	LPAREN:    `"("`,
	RPAREN:    `")"`,
}

var keywords = map[string]Kind{
	"let":   KW_LET,
	"print": KW_PRINT,
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + itoa(int(k)) + ")"
}

// Terminal returns the grammar name of k.
func (k Kind) Terminal() string {
	if k >= 0 && int(k) < len(terminalNames) && terminalNames[k] != "" {
		return terminalNames[k]
	}
	return k.String()
}

// Terminals returns the grammar names of kinds, in the order given.
func Terminals(kinds ...Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.Terminal()
	}
	return out
}

// Token is the terminal payload handed to the parser.
type Token struct {
	Kind Kind
	Lit  string
}

// String returns the source text of the token.
func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return t.Lit
}

// Item is a token with its byte-offset span.
type Item = lrutil.Spanned[int, Token]

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
