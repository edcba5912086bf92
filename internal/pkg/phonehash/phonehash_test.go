package phonehash

import "testing"

func TestHash(t *testing.T) {
	got := Hash("+15551234567")
	if len(got) != 128 {
		t.Fatalf("expected a 128-char hex SHA-512 digest, got %d chars", len(got))
	}

	if got != Hash("+15551234567") {
		t.Fatal("Hash must be deterministic for the same input")
	}

	if Hash("+15551234567") == Hash("+15551234568") {
		t.Fatal("different phones must not collide")
	}
}

func TestHash_Empty(t *testing.T) {
	got := Hash("")
	want := "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"
	if got != want {
		t.Fatalf("Hash(\"\") = %s, want %s", got, want)
	}
}
