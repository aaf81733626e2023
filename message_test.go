package sysprop

import "testing"

func TestEncodeMessageLayout(t *testing.T) {
	msg := encodeMessage(SetProperty, "property", "value1")
	if len(msg) != messageSize {
		t.Fatalf("encodeMessage length = %d, want %d", len(msg), messageSize)
	}
	if cmd := le.Uint32(msg[0:4]); cmd != SetProperty {
		t.Errorf("cmd = %d, want %d", cmd, SetProperty)
	}
	name := msg[4 : 4+NameMax]
	if string(name[:8]) != "property" {
		t.Errorf("name field = %q", name[:8])
	}
	for _, b := range name[8:] {
		if b != 0 {
			t.Fatal("name field not zero-padded past the name")
		}
	}
	value := msg[4+NameMax:]
	if string(value[:6]) != "value1" {
		t.Errorf("value field = %q", value[:6])
	}
}
