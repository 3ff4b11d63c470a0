package typeid

import (
	"strings"
	"testing"
)

func TestNewSessionIDValidates(t *testing.T) {
	id := NewSessionID()
	if !strings.HasPrefix(id, PrefixSession+"_") {
		t.Fatalf("id %q lacks prefix", id)
	}
	if err := Validate(id, PrefixSession); err != nil {
		t.Fatal(err)
	}
	if err := Validate(id, PrefixStroke); err == nil {
		t.Error("expected prefix mismatch error")
	}
}

func TestValidateGarbage(t *testing.T) {
	if err := Validate("not an id", PrefixSession); err == nil {
		t.Error("expected parse error")
	}
}

func TestStrokeIDsUnique(t *testing.T) {
	if NewStrokeID() == NewStrokeID() {
		t.Error("stroke ids collide")
	}
}
