package opcode

import "testing"

func TestBareStripsFinalBit(t *testing.T) {
	if got := Bare(0x82); got != Put {
		t.Fatalf("got %v, want Put", got)
	}
}

func TestIsFinal(t *testing.T) {
	if !IsFinal(0x80) {
		t.Fatal("0x80 should be final")
	}
	if IsFinal(0x02) {
		t.Fatal("0x02 should not be final")
	}
}

func TestCategorizeStatus(t *testing.T) {
	cases := map[byte]Category{
		0x05: CategoryProtocolError,
		0x10: CategoryInformational,
		0x20: CategorySuccess,
		0x21: CategorySuccess,
		0x30: CategoryRedirect,
		0x40: CategoryClientError,
		0x50: CategoryServerError,
		0x60: CategoryDatabaseError,
		0x70: CategoryUnknown,
	}
	for code, want := range cases {
		if got := CategorizeStatus(code); got != want {
			t.Errorf("CategorizeStatus(%#x) = %v, want %v", code, got, want)
		}
	}
}

func TestCategorizeStatusIgnoresFinalBit(t *testing.T) {
	if CategorizeStatus(OK) != CategorizeStatus(OK|FinalBit) {
		t.Fatal("final bit should not affect categorization")
	}
}
