package thirdvm

import "testing"

func TestExceptionNameKnownCodes(t *testing.T) {
	cases := map[uint32]string{
		ExcWordNotFound:  "WORD_NOT_FOUND",
		ExcIntIsNoWord:   "INT_IS_NO_WORD",
		ExcLocalIsNotInt: "LOCAL_IS_NOT_INT",
		ExcDivideByZero:  "DIVIDE_BY_ZERO",
	}
	for code, want := range cases {
		if got := ExceptionName(code); got != want {
			t.Errorf("ExceptionName(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestExceptionNameUnknownCode(t *testing.T) {
	if got := ExceptionName(0xFFFF); got != "" {
		t.Errorf("ExceptionName(unknown) = %q, want empty", got)
	}
}
