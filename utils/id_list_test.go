package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseIDList(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	t.Run("comma separated", func(t *testing.T) {
		ids := ParseIDList(a.String() + ", " + b.String() + "," + a.String())
		if len(ids) != 2 || ids[0] != a || ids[1] != b {
			t.Fatalf("ids = %v, want [%s %s]", ids, a, b)
		}
	})

	t.Run("json array", func(t *testing.T) {
		ids := ParseIDList(`["` + a.String() + `","` + b.String() + `"]`)
		if len(ids) != 2 || ids[0] != a || ids[1] != b {
			t.Fatalf("ids = %v", ids)
		}
	})

	t.Run("invalid entries dropped", func(t *testing.T) {
		ids := ParseIDList("garbage," + a.String() + ",,also-garbage")
		if len(ids) != 1 || ids[0] != a {
			t.Fatalf("ids = %v, want [%s]", ids, a)
		}
	})

	t.Run("empty and malformed", func(t *testing.T) {
		if ids := ParseIDList(""); ids != nil {
			t.Fatalf("empty input: %v", ids)
		}
		if ids := ParseIDList("[not json"); ids != nil {
			t.Fatalf("malformed json: %v", ids)
		}
	})
}

func TestJoinIDList(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	if got := JoinIDList([]uuid.UUID{a, b}); got != a.String()+","+b.String() {
		t.Fatalf("JoinIDList = %q", got)
	}
	if got := JoinIDList(nil); got != "" {
		t.Fatalf("JoinIDList(nil) = %q", got)
	}
}
