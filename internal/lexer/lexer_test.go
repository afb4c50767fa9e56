package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `var x = 5;
x = x + 10;
`
	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"var", VAR},
		{"x", IDENT},
		{"=", ASSIGN},
		{"5", NUMBER},
		{";", SEMI},
		{"x", IDENT},
		{"=", ASSIGN},
		{"x", IDENT},
		{"+", PLUS},
		{"10", NUMBER},
		{";", SEMI},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "function return if else do while for in instanceof " +
		"break continue switch case default try catch finally throw " +
		"new delete typeof void this null true false with debugger"

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"function", FUNCTION}, {"return", RETURN}, {"if", IF}, {"else", ELSE},
		{"do", DO}, {"while", WHILE}, {"for", FOR}, {"in", IN},
		{"instanceof", INSTANCEOF}, {"break", BREAK}, {"continue", CONTINUE},
		{"switch", SWITCH}, {"case", CASE}, {"default", DEFAULT}, {"try", TRY},
		{"catch", CATCH}, {"finally", FINALLY}, {"throw", THROW}, {"new", NEW},
		{"delete", DELETE}, {"typeof", TYPEOF}, {"void", VOID}, {"this", THIS},
		{"null", NULL}, {"true", TRUE}, {"false", FALSE}, {"with", WITH},
		{"debugger", DEBUGGER},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d]: expected {%q,%s}, got {%q,%s}", i, tt.expectedLiteral, tt.expectedType, tok.Literal, tok.Type)
		}
	}
}

func TestOperatorsAndPunctuators(t *testing.T) {
	input := "{ } ( ) [ ] . ; , : ? ~ " +
		"< > <= >= == != === !== " +
		"+ - * / % ++ -- " +
		"<< >> >>> & | ^ ! && || " +
		"= += -= *= /= %= &= |= ^= <<= >>= >>>="

	tests := []TokenType{
		LBRACE, RBRACE, LPAREN, RPAREN, LBRACKET, RBRACKET, DOT, SEMI, COMMA, COLON, QUESTION, TILDE,
		LT, GT, LE, GE, EQ, NE, SEQ, SNE,
		PLUS, MINUS, STAR, SLASH, PERCENT, INC, DEC,
		LSHIFT, RSHIFT, URSHIFT, AND, OR, XOR, NOT, LAND, LOR,
		ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		AND_ASSIGN, OR_ASSIGN, XOR_ASSIGN, LSHIFT_ASSIGN, RSHIFT_ASSIGN, URSHIFT_ASSIGN,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d]: expected %s, got %s (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
	if eof := l.NextToken(); eof.Type != EOF {
		t.Fatalf("expected trailing EOF, got %s", eof.Type)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"123", "123"},
		{"3.14", "3.14"},
		{"0x1A", "0x1A"},
		{"1e10", "1e10"},
		{"1.5e-3", "1.5e-3"},
		{"1e", "1"}, // invalid exponent: the literal stops before 'e', and the 'e' itself is skipped
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != NUMBER {
			t.Fatalf("input %q: expected NUMBER, got %s", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Fatalf("input %q: expected literal %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'hello'`, "hello"},
		{`"hello"`, "hello"},
		{`'line1\nline2'`, "line1\nline2"},
		{`'tab\there'`, "tab\there"},
		{`'ABC'`, "ABC"},
		{`'\x41BC'`, "ABC"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("input %q: expected STRING, got %s", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Fatalf("input %q: expected %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New("'unterminated")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(l.Errors()))
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := `// line comment
x /* block
comment */ = 1;`
	l := New(input)
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "x" {
		t.Fatalf("expected IDENT x, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != ASSIGN {
		t.Fatalf("expected ASSIGN, got %s", tok.Type)
	}
}

func TestNewlineBeforeFlag(t *testing.T) {
	input := "a\nb"
	l := New(input)
	first := l.NextToken()
	if first.NewlineBefore {
		t.Fatalf("first token should not report a newline before it")
	}
	second := l.NextToken()
	if !second.NewlineBefore {
		t.Fatalf("second token should report the newline that precedes it")
	}
}

func TestPositions(t *testing.T) {
	input := "ab\ncd"
	l := New(input)
	first := l.NextToken()
	if first.Pos.Line != 1 {
		t.Fatalf("expected line 1, got %d", first.Pos.Line)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 {
		t.Fatalf("expected line 2, got %d", second.Pos.Line)
	}
}
