package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"aye.chan@example.com",
		"finance+claims@corp.co.uk",
		"a_b-c@sub.domain.io",
	}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@no-local-part.com",
		"spaces in@example.com",
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestValidatePhoneNumber_Invalid(t *testing.T) {
	for _, p := range []string{"", "abc", "1"} {
		if err := ValidatePhoneNumber(p, CountryCode); err == nil {
			t.Errorf("ValidatePhoneNumber(%q) = nil, want error", p)
		}
	}
}

func TestBcryptRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret-claims")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(string(hashed), "s3cret-claims"); err != nil {
		t.Errorf("ComparePassword(correct) = %v, want nil", err)
	}
	if err := ComparePassword(string(hashed), "wrong"); err == nil {
		t.Error("ComparePassword(wrong) = nil, want error")
	}
}

func TestComparePassword_CorruptHash(t *testing.T) {
	for _, stored := range []string{"", "not-a-bcrypt-hash"} {
		if err := ComparePassword(stored, "anything"); err == nil {
			t.Errorf("ComparePassword(%q) = nil, want error", stored)
		}
	}
}

func TestProcessValidationErrors(t *testing.T) {
	type form struct {
		Username string `validate:"required"`
		Email    string `validate:"email"`
	}
	err := validator.New().Struct(form{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	fields := ProcessValidationErrors(err)
	if fields["Username"] != "required" {
		t.Errorf("Username tag = %q, want %q", fields["Username"], "required")
	}
	if fields["Email"] != "email" {
		t.Errorf("Email tag = %q, want %q", fields["Email"], "email")
	}
}
