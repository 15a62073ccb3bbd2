// Package keyparse turns command-line key tokens into typed lookup keys.
//
// Each token is compiled as a CEL expression. Tokens that are a single
// literal (optionally negated) evaluate to that literal: 0 and -1 become int,
// 1u uint64, 1.5 float64, true bool, null nil, and "0" or '0' the string 0.
// Every other token, including bare words such as items or bad-key, is used
// verbatim as a string.
package keyparse

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/cel-go/cel"
	celast "github.com/google/cel-go/common/ast"
	"github.com/google/cel-go/common/operators"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Parser evaluates key tokens. It is safe for concurrent use.
type Parser struct {
	env *cel.Env
}

// New creates a Parser with an empty CEL environment: no variables, so any
// identifier fails to compile and falls back to a string key.
func New() (*Parser, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Parser{env: env}, nil
}

// Parse converts one token into a key.
func (p *Parser) Parse(token string) any {
	expr := strings.TrimSpace(token)
	if expr == "" {
		return token
	}
	ast, issues := p.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return token
	}
	if !isLiteral(ast.NativeRep().Expr()) {
		return token
	}
	prg, err := p.env.Program(ast)
	if err != nil {
		return token
	}
	out, _, err := prg.Eval(map[string]any{})
	if err != nil {
		return token
	}
	return toKey(out)
}

// ParseAll converts tokens in order.
func (p *Parser) ParseAll(tokens []string) []any {
	keys := make([]any, len(tokens))
	for i, t := range tokens {
		keys[i] = p.Parse(t)
	}
	return keys
}

// Raw returns tokens as string keys without parsing.
func Raw(tokens []string) []any {
	keys := make([]any, len(tokens))
	for i, t := range tokens {
		keys[i] = t
	}
	return keys
}

func isLiteral(e celast.Expr) bool {
	switch e.Kind() { //nolint:exhaustive // only literals and their negation are keys
	case celast.LiteralKind:
		return true
	case celast.CallKind:
		call := e.AsCall()
		return call.FunctionName() == operators.Negate &&
			len(call.Args()) == 1 &&
			call.Args()[0].Kind() == celast.LiteralKind
	default:
		return false
	}
}

// toKey maps CEL results onto the Go types decoders produce: integers that fit
// become int so they index slices and YAML int-keyed maps.
func toKey(out ref.Val) any {
	switch v := out.(type) {
	case types.Null:
		return nil
	case types.Int:
		if int64(v) >= math.MinInt && int64(v) <= math.MaxInt {
			return int(v)
		}
		return int64(v)
	case types.Bytes:
		return string(v)
	default:
		return out.Value()
	}
}
