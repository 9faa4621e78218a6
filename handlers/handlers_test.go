package handlers

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Customer#1", true},
		{"customer#1", false},
		{"CUSTOMER#1", false},
		{"Customer#x", false},
		{"Customer11", false},
		{"Cust omer#1", false},
		{"Cu#1", false},
		{strings.Repeat("Aa1#", 13), false},
	}
	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"sam@eathub.test", "first.last+tag@mail.example.com"} {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false", email)
		}
	}
	for _, email := range []string{"", "sam", "sam@", "@eathub.test", "sam@eathub"} {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true", email)
		}
	}
}

func TestImageDataURI(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
	uri, err := ImageDataURI(jpeg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Errorf("uri = %.30q", uri)
	}

	if _, err := ImageDataURI([]byte("%PDF-1.7 not an image")); err == nil {
		t.Error("pdf accepted as an image")
	}
}

func TestCheckDiscountPrice(t *testing.T) {
	lower, higher := 8.0, 12.0
	if !checkDiscountPrice(10, nil) || !checkDiscountPrice(10, &lower) {
		t.Error("valid discount rejected")
	}
	if checkDiscountPrice(10, &higher) {
		t.Error("discount above price accepted")
	}
}
