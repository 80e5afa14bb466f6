package main

import "testing"

func TestExtensionFromMimeType(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"application/pdf": ".pdf",
		"image/gif":       "",
		"text/plain":      "",
	}
	for mime, want := range cases {
		if got := extensionFromMimeType(mime); got != want {
			t.Errorf("extensionFromMimeType(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestReceiptMimeAllowlist(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/png", "application/pdf"} {
		if !receiptMimeTypes[mime] {
			t.Errorf("%q should be allowed", mime)
		}
	}
	for _, mime := range []string{"image/gif", "image/svg+xml", "application/zip", ""} {
		if receiptMimeTypes[mime] {
			t.Errorf("%q should not be allowed", mime)
		}
	}
}
