package model

import (
	"testing"
)

func TestBase_StateTransitions(t *testing.T) {
	var b Base
	if b.IsTrained() {
		t.Fatal("zero value must be untrained")
	}
	if b.State().String() != "untrained" {
		t.Errorf("State() = %s, want untrained", b.State())
	}

	b.MarkTrained()
	if !b.IsTrained() {
		t.Fatal("MarkTrained should set the trained state")
	}
	if b.State() != Trained || b.State().String() != "trained" {
		t.Errorf("State() = %s, want trained", b.State())
	}
}
