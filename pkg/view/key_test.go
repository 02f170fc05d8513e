package view_test

import (
	"testing"

	"github.com/vango-dev/viewtree/pkg/view"
)

type keyed struct {
	ID   string
	name string
}

func TestPropKey(t *testing.T) {
	if got := view.PropKey[keyed]("ID")(keyed{ID: "a"}); got != "a" {
		t.Errorf("struct key = %v, want a", got)
	}
	if got := view.PropKey[*keyed]("ID")(&keyed{ID: "b"}); got != "b" {
		t.Errorf("pointer key = %v, want b", got)
	}
	if got := view.PropKey[*keyed]("ID")(nil); got != nil {
		t.Errorf("nil pointer key = %v, want nil", got)
	}
	if got := view.PropKey[keyed]("name")(keyed{name: "x"}); got != nil {
		t.Errorf("unexported field key = %v, want nil", got)
	}
	if got := view.PropKey[map[string]any]("id")(map[string]any{"id": 7}); got != 7 {
		t.Errorf("map key = %v, want 7", got)
	}
	if got := view.PropKey[keyed]("Missing")(keyed{}); got != nil {
		t.Errorf("missing key = %v, want nil", got)
	}
}
