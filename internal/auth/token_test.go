package auth

import "testing"

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"Bearer abc":     "abc",
		"bearer  abc  ":  "abc",
		"Basic dXNlcjpw": "",
		"Bearer":         "",
	}
	for header, want := range tests {
		if got := BearerToken(header); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestTokenVerifier(t *testing.T) {
	if err := NewTokenVerifier("").Verify("anything"); err != nil {
		t.Fatalf("disabled verifier rejected: %v", err)
	}
	v := NewTokenVerifier("s3cret")
	if err := v.Verify("s3cret"); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if err := v.Verify("nope"); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
