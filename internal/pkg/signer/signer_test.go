package signer

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"notification/image/foo.png":   "notifications/images/foo.png",
		"notification/images/foo.png":  "notifications/images/foo.png",
		"notifications/image/foo.png":  "notifications/images/foo.png",
		"notifications/images/foo.png": "notifications/images/foo.png",
		"https://cdn.example.com/x.png": "https://cdn.example.com/x.png",
		"http://cdn.example.com/x.png":  "http://cdn.example.com/x.png",
	}

	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
