package sel

import (
	"testing"

	"github.com/chkup/spec-tools/pkg/registry"
	"github.com/chkup/spec-tools/pkg/sel/ast"
	"github.com/chkup/spec-tools/pkg/sel/walk"
)

func seedRegistry(t *testing.T) *registry.Memory {
	t.Helper()

	reg := registry.NewMemory()
	defs := map[string]ast.Node{
		"user/email": ast.NewSymbol("sel.core/string?"),
		"user/age":   ast.NewSymbol("sel.core/int?"),
		"user/profile": &ast.Application{
			Head: ast.Keys,
			Opts: []ast.KeywordArg{
				{Key: "req", Value: &ast.Names{Refs: []ast.QName{
					ast.ParseQName("user/email"),
					ast.ParseQName("user/age"),
				}}},
			},
		},
	}
	for name, def := range defs {
		if err := reg.Register(ast.ParseQName(name), def); err != nil {
			t.Fatalf("Register(%s) failed: %v", name, err)
		}
	}
	return reg
}

func TestWalk_CountsNodes(t *testing.T) {
	reg := seedRegistry(t)

	schema := &ast.Application{
		Head: ast.And,
		Args: []ast.Node{
			ast.NewNamed("user/email"),
			&ast.Application{Head: ast.Nilable, Args: []ast.Node{ast.NewNamed("user/age")}},
		},
	}

	count := 0
	_, err := Walk(schema, reg, func(key walk.Key, node ast.Node, children []any, ctx any) (any, error) {
		count++
		return count, nil
	}, nil)
	if err != nil {
		t.Fatalf("Walk() failed: %v", err)
	}

	// user/email, user/age, nilable, and: four reducer calls.
	if count != 4 {
		t.Errorf("reducer called %d times, want 4", count)
	}
}

func TestCollectNamed(t *testing.T) {
	reg := seedRegistry(t)

	got, err := CollectNamed(ast.NewNamed("user/profile"), reg)
	if err != nil {
		t.Fatalf("CollectNamed() failed: %v", err)
	}

	for _, name := range []string{"user/profile", "user/email", "user/age"} {
		if _, ok := got[ast.ParseQName(name)]; !ok {
			t.Errorf("CollectNamed() missing %s", name)
		}
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestWalk_NilLookup(t *testing.T) {
	schema := &ast.Application{Head: ast.Tuple, Args: []ast.Node{ast.NewSymbol("sel.core/int?")}}

	count := 0
	_, err := Walk(schema, nil, func(key walk.Key, node ast.Node, children []any, ctx any) (any, error) {
		count++
		return nil, nil
	}, nil)
	if err != nil {
		t.Fatalf("Walk() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("reducer called %d times, want 2", count)
	}
}
