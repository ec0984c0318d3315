package calc

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokFloorDiv
	tokLParen
	tokRParen
)

var tokenNames = map[tokenKind]string{
	tokEOF:      "end of input",
	tokNumber:   "number",
	tokPlus:     "'+'",
	tokMinus:    "'-'",
	tokStar:     "'*'",
	tokSlash:    "'/'",
	tokPow:      "'**'",
	tokFloorDiv: "'//'",
	tokLParen:   "'('",
	tokRParen:   "')'",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanExponent reads "e[+-]digits" starting at src[i] and returns the
// offset just past it.
func scanExponent(src string, i int) (int, bool) {
	i++
	if i < len(src) && (src[i] == '+' || src[i] == '-') {
		i++
	}
	start := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	return i, i > start
}

// lex splits src into tokens. Spaces and tabs separate tokens and are
// otherwise ignored; any other unknown byte is a syntax error.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i < len(src) && src[i] == '.' {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			if src[start:i] == "." {
				return nil, &EvalError{Pos: start, Err: ErrSyntax}
			}
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				end, ok := scanExponent(src, i)
				if !ok {
					return nil, &EvalError{Pos: i, Err: ErrSyntax}
				}
				i = end
			}
			toks = append(toks, token{kind: tokNumber, text: src[start:i], pos: start})
		case c == '*' || c == '/':
			kind, double := tokStar, tokPow
			if c == '/' {
				kind, double = tokSlash, tokFloorDiv
			}
			if i+1 < len(src) && src[i+1] == c {
				toks = append(toks, token{kind: double, text: src[i : i+2], pos: i})
				i += 2
				continue
			}
			toks = append(toks, token{kind: kind, text: src[i : i+1], pos: i})
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, &EvalError{Pos: i, Err: ErrSyntax}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}
