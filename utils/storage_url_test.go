package utils

import "testing"

func TestBuildObjectAccessURL_GCSEnv(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "")
	t.Setenv("GCS_URL", "storage.googleapis.com")
	t.Setenv("GCS_BUCKET", "claims-receipts")

	got := BuildObjectAccessURL("receipts/7/abc.png")
	want := "https://storage.googleapis.com/claims-receipts/receipts/7/abc.png"
	if got != want {
		t.Errorf("BuildObjectAccessURL = %q, want %q", got, want)
	}
}

func TestBuildObjectAccessURL_BaseURLTemplate(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "https://cdn.example.com/{objectKey}")

	got := BuildObjectAccessURL("receipts/7/abc.png")
	want := "https://cdn.example.com/receipts/7/abc.png"
	if got != want {
		t.Errorf("BuildObjectAccessURL = %q, want %q", got, want)
	}
}

func TestBuildObjectAccessURL_NoEnvReturnsKey(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "")
	t.Setenv("GCS_URL", "")
	t.Setenv("GCS_BUCKET", "")

	if got := BuildObjectAccessURL("receipts/7/abc.png"); got != "receipts/7/abc.png" {
		t.Errorf("BuildObjectAccessURL = %q, want raw key", got)
	}
}

func TestExtractObjectKeyFromURL(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "")
	t.Setenv("GCS_URL", "storage.googleapis.com")
	t.Setenv("GCS_BUCKET", "claims-receipts")

	cases := []struct {
		in   string
		want string
	}{
		{"https://storage.googleapis.com/claims-receipts/receipts/7/abc.png", "receipts/7/abc.png"},
		{"https://claims-receipts.storage.googleapis.com/receipts/7/abc.png", "receipts/7/abc.png"},
		{"https://storage.cloud.google.com/claims-receipts/receipts/7/abc.png", "receipts/7/abc.png"},
		{"gs://claims-receipts/receipts/7/abc.png", "receipts/7/abc.png"},
		// Raw keys pass through.
		{"receipts/7/abc.png", "receipts/7/abc.png"},
		// Traversal is rejected.
		{"receipts/../secrets/key.json", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractObjectKeyFromURL(tc.in); got != tc.want {
			t.Errorf("ExtractObjectKeyFromURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestThumbnailObjectKey(t *testing.T) {
	cases := map[string]string{
		"receipts/7/abc.png": "receipts/7/thumbnails/abc.png",
		"abc.png":            "thumbnails/abc.png",
	}
	for in, want := range cases {
		if got := ThumbnailObjectKey(in); got != want {
			t.Errorf("ThumbnailObjectKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildThenExtractRoundTrip(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_BASE_URL", "")
	t.Setenv("GCS_URL", "storage.googleapis.com")
	t.Setenv("GCS_BUCKET", "claims-receipts")

	key := "receipts/42/deadbeef.pdf"
	if got := ExtractObjectKeyFromURL(BuildObjectAccessURL(key)); got != key {
		t.Errorf("round trip = %q, want %q", got, key)
	}
}
