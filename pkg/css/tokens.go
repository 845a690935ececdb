package css

import (
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"
)

// tokenize scans s into significant tokens. Whitespace and comments are
// dropped, and a sign character is folded into the numeric token after it.
func tokenize(s string) []*scanner.Token {
	var out []*scanner.Token
	sc := scanner.New(s)
	var sign string
	for {
		t := sc.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return out
		case scanner.TokenError:
			return append(out, t)
		case scanner.TokenS, scanner.TokenComment:
			continue
		case scanner.TokenChar:
			if t.Value == "-" || t.Value == "+" {
				sign = t.Value
				continue
			}
		case scanner.TokenNumber, scanner.TokenPercentage, scanner.TokenDimension:
			if sign != "" {
				t = &scanner.Token{Type: t.Type, Value: sign + t.Value, Line: t.Line, Column: t.Column}
				sign = ""
			}
		}
		out = append(out, t)
	}
}

// functionArgs splits the tokens following a function token into its
// comma-separated arguments and returns whatever trails the closing paren.
func functionArgs(toks []*scanner.Token) (args [][]*scanner.Token, rest []*scanner.Token, err error) {
	depth := 0
	var cur []*scanner.Token
	for i, t := range toks {
		switch {
		case t.Type == scanner.TokenError:
			return nil, nil, fmt.Errorf("invalid token %q", t.Value)
		case t.Type == scanner.TokenFunction:
			depth++
		case t.Type == scanner.TokenChar && t.Value == "(":
			depth++
		case t.Type == scanner.TokenChar && t.Value == ")":
			if depth == 0 {
				if len(cur) > 0 || len(args) > 0 {
					args = append(args, cur)
				}
				return args, toks[i+1:], nil
			}
			depth--
		case t.Type == scanner.TokenChar && t.Value == "," && depth == 0:
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	return nil, nil, fmt.Errorf("unterminated function")
}

func join(toks []*scanner.Token) string {
	vals := make([]string, len(toks))
	for i, t := range toks {
		vals[i] = t.Value
	}
	return strings.Join(vals, " ")
}
