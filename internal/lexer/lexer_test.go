package lexer

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var updateGolden = flag.Bool("update", false, "update golden files")

type tokenSnapshot struct {
	Kind  string `json:"kind"`
	Lit   string `json:"lit"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func snapshotTokens(items []Item) []tokenSnapshot {
	out := make([]tokenSnapshot, 0, len(items))
	for _, it := range items {
		out = append(out, tokenSnapshot{
			Kind:  it.Value.Kind.String(),
			Lit:   it.Value.Lit,
			Start: it.Start,
			End:   it.End,
		})
	}
	return out
}

func kinds(items []Item) []Kind {
	out := make([]Kind, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value.Kind)
	}
	return out
}

func TestLexStatements(t *testing.T) {
	items, errs := Lex("let x = (1 + y2) * 30 % 4;\nprint -x / 2;")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Kind{
		KW_LET, IDENT, ASSIGN, LPAREN, NUMBER, PLUS, IDENT, RPAREN, STAR, NUMBER, PERCENT, NUMBER, SEMICOLON,
		KW_PRINT, MINUS, IDENT, SLASH, NUMBER, SEMICOLON, EOF,
	}
	if got := kinds(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds mismatch:\n got %v\nwant %v", got, want)
	}
	if items[1].Value.Lit != "x" || items[1].Start != 4 || items[1].End != 5 {
		t.Fatalf("unexpected ident item: %+v", items[1])
	}
}

func TestLexSkipsComments(t *testing.T) {
	items, errs := Lex("// leading\n1 /* inner\n */ + 2 // trailing")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := kinds(items); !reflect.DeepEqual(got, []Kind{NUMBER, PLUS, NUMBER, EOF}) {
		t.Fatalf("unexpected kinds: %v", got)
	}
}

func TestLexIllegalCharacter(t *testing.T) {
	items, errs := Lex("1 $ 2")
	if len(errs) != 0 {
		t.Fatalf("illegal characters are not lexer errors, got %v", errs)
	}
	if items[1].Value.Kind != ILLEGAL || items[1].Value.Lit != "$" || items[1].Start != 2 || items[1].End != 3 {
		t.Fatalf("unexpected illegal item: %+v", items[1])
	}
}

func TestLexIllegalMultibyteCharacter(t *testing.T) {
	items, _ := Lex("€;")
	if items[0].Value.Kind != ILLEGAL || items[0].End != 3 {
		t.Fatalf("expected a three byte ILLEGAL item, got %+v", items[0])
	}
	if items[1].Value.Kind != SEMICOLON {
		t.Fatalf("expected lexing to resume after illegal rune, got %+v", items[1])
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code string
		span Span
		lit  string
	}{
		{name: "malformed number", src: "x = 12ab;", code: ErrMalformedNumber, span: Span{Start: 4, End: 8}, lit: "12ab"},
		{name: "number range", src: "99999999999999999999", code: ErrNumberRange, span: Span{Start: 0, End: 20}, lit: "99999999999999999999"},
		{name: "unterminated comment", src: "1 /* open", code: ErrUnterminatedComment, span: Span{Start: 2, End: 9}, lit: "/* open"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, errs := Lex(tc.src)
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Code != tc.code || errs[0].Span != tc.span {
				t.Fatalf("unexpected error: %+v", errs[0])
			}
			var errItem *Item
			for i := range items {
				if items[i].Value.Kind == ERROR {
					errItem = &items[i]
				}
			}
			if errItem == nil || errItem.Value.Lit != tc.lit {
				t.Fatalf("expected ERROR item %q, got %+v", tc.lit, items)
			}
			if items[len(items)-1].Value.Kind != EOF {
				t.Fatalf("expected EOF at end, got %+v", items[len(items)-1])
			}
		})
	}
}

func TestTerminals(t *testing.T) {
	got := Terminals(IDENT, KW_LET, SEMICOLON, RPAREN)
	want := []string{"IDENT", `"let"`, `";"`, `")"`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if EOF.Terminal() != "EOF" || Kind(99).String() != "Kind(99)" {
		t.Fatalf("unexpected fallback names: %s %s", EOF.Terminal(), Kind(99))
	}
}

func TestLineIndexPosition(t *testing.T) {
	src := "let a = 1;\nlet ü = 2;\n"
	ix := NewLineIndex(src)
	cases := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 1}},
		{4, Position{Line: 1, Column: 5}},
		{10, Position{Line: 1, Column: 11}},
		{11, Position{Line: 2, Column: 1}},
		{17, Position{Line: 2, Column: 6}},
		{len(src), Position{Line: 3, Column: 1}},
		{len(src) + 10, Position{Line: 3, Column: 1}},
		{-1, Position{Line: 1, Column: 1}},
	}
	for _, tc := range cases {
		if got := ix.Position(tc.offset); got != tc.want {
			t.Fatalf("offset %d: got %v want %v", tc.offset, got, tc.want)
		}
	}
	if s := (Position{Line: 3, Column: 12}).String(); s != "3:12" {
		t.Fatalf("unexpected position string %q", s)
	}
}

func TestLexerGolden(t *testing.T) {
	inputPath := filepath.Join("..", "..", "testdata", "lexer", "valid", "arith.calc")
	goldenPath := filepath.Join("..", "..", "testdata", "lexer", "golden", "arith.tokens.json")

	src, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("read %s: %v", inputPath, err)
	}
	items, errs := Lex(string(src))
	if len(errs) > 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}

	got := snapshotTokens(items)
	if *updateGolden {
		data, err := json.MarshalIndent(got, "", "  ")
		if err != nil {
			t.Fatalf("marshal golden: %v", err)
		}
		if err := os.WriteFile(goldenPath, append(data, '\n'), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	data, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	var want []tokenSnapshot
	if err := json.Unmarshal(data, &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens mismatch (re-run with -update to refresh)")
	}
}
