package mmerr

import (
	"errors"
	"testing"
)

func TestNew_CarriesCodeAndMessage(t *testing.T) {
	err := New(ErrCodeParse, "unexpected token %q", "->")
	if err.Code != ErrCodeParse {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeParse)
	}
	if err.Error() == "" {
		t.Error("Error() must not be empty")
	}
}

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrCodeInternal, cause, "wrapped")
	if !errors.Is(err, cause) {
		t.Error("Wrap must preserve the cause for errors.Is")
	}
}

func TestIs_MatchesOnlyDeclaredCode(t *testing.T) {
	err := New(ErrCodeLayout, "bad invariant")
	if !Is(err, ErrCodeLayout) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeParse) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeLayout) {
		t.Error("Is should return false for a non-*Error")
	}
}

func TestGetCode_ReturnsEmptyForPlainError(t *testing.T) {
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode on a plain error = %q, want empty", code)
	}
	if code := GetCode(New(ErrCodeUsage, "x")); code != ErrCodeUsage {
		t.Errorf("GetCode = %q, want %q", code, ErrCodeUsage)
	}
}

func TestSixCodesAreDistinct(t *testing.T) {
	codes := []Code{
		ErrCodeParse, ErrCodeReference, ErrCodeRouting,
		ErrCodeUsage, ErrCodeLayout, ErrCodeInternal,
	}
	seen := map[Code]bool{}
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate code value %q", c)
		}
		seen[c] = true
	}
}

func TestUserMessage_StripsCodeFromStructuredError(t *testing.T) {
	err := New(ErrCodeParse, "unterminated bracket")
	if msg := UserMessage(err); msg != "unterminated bracket" {
		t.Errorf("UserMessage = %q, want %q", msg, "unterminated bracket")
	}
	plain := errors.New("raw message")
	if msg := UserMessage(plain); msg != "raw message" {
		t.Errorf("UserMessage on plain error = %q, want %q", msg, "raw message")
	}
}
