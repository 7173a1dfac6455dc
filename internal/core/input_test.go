package core

import "testing"

func TestInputFrameSingleKey(t *testing.T) {
	f := NewInputFrame()

	if !f.Press("q") {
		t.Fatal("first press should be recorded")
	}
	if f.Press("d") {
		t.Error("second press in the same frame should be dropped")
	}
	if f.Key != "q" {
		t.Errorf("Key = %q, expected q", f.Key)
	}

	f.Set(ActionPause)
	f.Clear()

	if f.Key != KeyNone {
		t.Errorf("Clear should reset key, got %q", f.Key)
	}
	if f.Has(ActionPause) {
		t.Error("Clear should reset actions")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionConfirm)
	f.Press("space")

	c := f.Clone()
	f.Clear()

	if !c.Has(ActionConfirm) || c.Key != "space" {
		t.Errorf("clone should be independent of the original, got %+v", c)
	}
}

func TestKeyString(t *testing.T) {
	if KeyNone.String() != "None" {
		t.Errorf("KeyNone.String() = %q", KeyNone.String())
	}
	if Key("q").String() != "q" {
		t.Errorf("Key(q).String() = %q", Key("q").String())
	}
}
