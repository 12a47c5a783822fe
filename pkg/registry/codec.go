package registry

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chkup/spec-tools/pkg/sel/ast"
	selerrors "github.com/chkup/spec-tools/pkg/sel/errors"
)

// The YAML surface for schema expressions, used by definition files
// and the SQLite backend:
//
//	":user/email"                      named reference
//	"sel.core/string?"                 bare predicate symbol
//	42, true, 1.5                      literal
//	["sel.core/nilable", EXPR]         application, positional args
//	["sel.core/or", ".ok", E1,
//	               ".err", E2]         keyword options: a ".key"
//	                                   string followed by its value,
//	                                   order preserved
//	[":a", ":b"]                       name vector (record keys)
//	{enum: [red, green, blue]}         raw-set enumeration
//	{fn: {params: [x], body: EXPR}}    wrapper lambda
//
// An application head must be a qualified name (contain a slash);
// that is what distinguishes it from a name vector.

// DecodeExpr converts a YAML-decoded value into a schema expression.
func DecodeExpr(v any) (ast.Node, error) {
	switch val := v.(type) {
	case string:
		if ref, ok := strings.CutPrefix(val, ":"); ok {
			return ast.NewNamed(ref), nil
		}
		return ast.NewSymbol(val), nil

	case bool, int, int64, float64:
		return &ast.Literal{Value: val}, nil

	case []any:
		return decodeSequence(val)

	case map[string]any:
		return decodeMapping(val)

	default:
		return nil, decodeErrf("unsupported value %v (%T)", v, v)
	}
}

// decodeSequence decodes an application or a name vector.
func decodeSequence(seq []any) (ast.Node, error) {
	if head, ok := applicationHead(seq); ok {
		return decodeApplication(head, seq[1:])
	}
	if refs, ok := nameVector(seq); ok {
		return &ast.Names{Refs: refs}, nil
	}
	return nil, decodeErrf("sequence is neither an application (qualified head) nor a name vector: %v", seq)
}

func applicationHead(seq []any) (ast.QName, bool) {
	if len(seq) == 0 {
		return ast.QName{}, false
	}
	head, ok := seq[0].(string)
	if !ok || strings.HasPrefix(head, ":") || !strings.Contains(head, "/") {
		return ast.QName{}, false
	}
	return ast.ParseQName(head), true
}

func nameVector(seq []any) ([]ast.QName, bool) {
	refs := make([]ast.QName, 0, len(seq))
	for _, elem := range seq {
		s, ok := elem.(string)
		if !ok || !strings.HasPrefix(s, ":") {
			return nil, false
		}
		refs = append(refs, ast.ParseQName(s[1:]))
	}
	return refs, true
}

func decodeApplication(head ast.QName, tail []any) (*ast.Application, error) {
	app := &ast.Application{Head: head}

	for i := 0; i < len(tail); i++ {
		if key, ok := optionKey(tail[i]); ok {
			if i+1 >= len(tail) {
				return nil, decodeErrf("%s: option .%s has no value", head, key)
			}
			value, err := DecodeExpr(tail[i+1])
			if err != nil {
				return nil, err
			}
			app.Opts = append(app.Opts, ast.KeywordArg{Key: key, Value: value})
			i++
			continue
		}

		arg, err := DecodeExpr(tail[i])
		if err != nil {
			return nil, err
		}
		app.Args = append(app.Args, arg)
	}

	return app, nil
}

func optionKey(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || len(s) < 2 || !strings.HasPrefix(s, ".") {
		return "", false
	}
	return s[1:], true
}

// decodeMapping decodes the two single-key mapping forms: enumerations
// and wrapper lambdas.
func decodeMapping(m map[string]any) (ast.Node, error) {
	if len(m) != 1 {
		return nil, decodeErrf("mapping must have exactly one of the keys \"enum\" or \"fn\": %v", m)
	}

	if members, ok := m["enum"]; ok {
		seq, ok := members.([]any)
		if !ok {
			return nil, decodeErrf("enum members must be a sequence, got %T", members)
		}
		return &ast.Enumeration{Members: seq}, nil
	}

	if lambda, ok := m["fn"]; ok {
		return decodeLambda(lambda)
	}

	return nil, decodeErrf("unknown mapping form: %v", m)
}

func decodeLambda(v any) (ast.Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, decodeErrf("fn must be a mapping with params and body, got %T", v)
	}

	rawParams, ok := m["params"].([]any)
	if !ok {
		return nil, decodeErrf("fn params must be a sequence")
	}
	params := make([]string, 0, len(rawParams))
	for _, p := range rawParams {
		s, ok := p.(string)
		if !ok {
			return nil, decodeErrf("fn param %v is not a string", p)
		}
		params = append(params, s)
	}

	body, err := DecodeExpr(m["body"])
	if err != nil {
		return nil, err
	}

	return &ast.Application{
		Head: ast.Fn,
		Args: []ast.Node{&ast.Binding{Params: params}, body},
	}, nil
}

// EncodeExpr converts a schema expression into a YAML-encodable value.
// Handles and predicates carry live Go values and cannot be encoded.
func EncodeExpr(node ast.Node) (any, error) {
	switch n := node.(type) {
	case *ast.Named:
		return ":" + n.Name.String(), nil

	case *ast.Symbol:
		return n.Name.String(), nil

	case *ast.Literal:
		return n.Value, nil

	case *ast.Names:
		out := make([]any, 0, len(n.Refs))
		for _, ref := range n.Refs {
			out = append(out, ":"+ref.String())
		}
		return out, nil

	case *ast.Enumeration:
		return map[string]any{"enum": append([]any(nil), n.Members...)}, nil

	case *ast.Application:
		return encodeApplication(n)

	default:
		return nil, decodeErrf("cannot encode %T", node)
	}
}

func encodeApplication(app *ast.Application) (any, error) {
	// Wrapper lambdas round-trip through the {fn: ...} mapping form.
	if app.Head == ast.Fn && len(app.Args) == 2 && len(app.Opts) == 0 {
		if binding, ok := app.Args[0].(*ast.Binding); ok {
			body, err := EncodeExpr(app.Args[1])
			if err != nil {
				return nil, err
			}
			params := make([]any, 0, len(binding.Params))
			for _, p := range binding.Params {
				params = append(params, p)
			}
			return map[string]any{"fn": map[string]any{"params": params, "body": body}}, nil
		}
	}

	out := []any{app.Head.String()}
	for _, arg := range app.Args {
		enc, err := EncodeExpr(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	for _, kw := range app.Opts {
		enc, err := EncodeExpr(kw.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, "."+kw.Key, enc)
	}
	return out, nil
}

// ParseExpr decodes a single YAML document into a schema expression.
func ParseExpr(data []byte) (ast.Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, decodeErrf("invalid YAML: %v", err)
	}
	return DecodeExpr(v)
}

// MarshalExpr encodes a schema expression as a YAML document.
func MarshalExpr(node ast.Node) ([]byte, error) {
	v, err := EncodeExpr(node)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expression: %w", err)
	}
	return data, nil
}

func decodeErrf(format string, args ...any) *selerrors.Error {
	return &selerrors.Error{
		Type:    selerrors.ErrorTypeDecode,
		Message: fmt.Sprintf(format, args...),
	}
}
