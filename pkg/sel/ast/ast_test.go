package ast

import (
	"testing"
)

func TestParseQName(t *testing.T) {
	tests := []struct {
		in    string
		space string
		local string
	}{
		{"sel.core/and", "sel.core", "and"},
		{"string?", "", "string?"},
		{"user/profile/name", "user/profile", "name"},
		{"sel.core/*", "sel.core", "*"},
		{"", "", ""},
	}

	for _, tt := range tests {
		q := ParseQName(tt.in)
		if q.Space != tt.space || q.Local != tt.local {
			t.Errorf("ParseQName(%q) = {%q %q}, want {%q %q}",
				tt.in, q.Space, q.Local, tt.space, tt.local)
		}
	}
}

func TestQName_String_RoundTrip(t *testing.T) {
	for _, s := range []string{"sel.core/and", "string?", "user/email"} {
		if got := ParseQName(s).String(); got != s {
			t.Errorf("ParseQName(%q).String() = %q, want %q", s, got, s)
		}
	}
}

func TestQName_IsZero(t *testing.T) {
	if !(QName{}).IsZero() {
		t.Error("zero QName: IsZero() = false, want true")
	}
	if Core("and").IsZero() {
		t.Error("Core(\"and\"): IsZero() = true, want false")
	}
}

func TestApplication_Opt(t *testing.T) {
	app := &Application{
		Head: Or,
		Opts: []KeywordArg{
			{Key: "ok", Value: NewSymbol("sel.core/string?")},
			{Key: "err", Value: NewSymbol("sel.core/int?")},
		},
	}

	v, ok := app.Opt("err")
	if !ok {
		t.Fatal("Opt(\"err\") not found")
	}
	if sym, ok := v.(*Symbol); !ok || sym.Name.Local != "int?" {
		t.Errorf("Opt(\"err\") = %#v, want int? symbol", v)
	}

	if _, ok := app.Opt("missing"); ok {
		t.Error("Opt(\"missing\") found, want absent")
	}
}

func TestEnumFromSet_StableOrder(t *testing.T) {
	set := map[string]struct{}{"c": {}, "a": {}, "b": {}}

	first := EnumFromSet(set)
	for i := 0; i < 10; i++ {
		again := EnumFromSet(set)
		if len(again.Members) != len(first.Members) {
			t.Fatalf("len(Members) = %d, want %d", len(again.Members), len(first.Members))
		}
		for j := range first.Members {
			if again.Members[j] != first.Members[j] {
				t.Fatalf("run %d: Members[%d] = %v, want %v", i, j, again.Members[j], first.Members[j])
			}
		}
	}
}

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		node Node
		want NodeKind
	}{
		{NewNamed("user/email"), KindNamed},
		{NewSymbol("sel.core/string?"), KindSymbol},
		{&Handle{Value: 42}, KindHandle},
		{&Application{Head: And}, KindApplication},
		{&Binding{Params: []string{"x"}}, KindBinding},
		{&Names{Refs: []QName{ParseQName("user/email")}}, KindNames},
		{&Literal{Value: "set"}, KindLiteral},
		{EnumOf(1, 2, 3), KindEnumeration},
		{&Predicate{Fn: func(any) bool { return true }}, KindPredicate},
	}

	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.want {
			t.Errorf("%T.Kind() = %d, want %d", tt.node, got, tt.want)
		}
	}
}
