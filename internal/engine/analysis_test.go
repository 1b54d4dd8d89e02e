package engine

import "testing"

func TestTokensSplitsOnSeparators(t *testing.T) {
	var got []string
	for token := range Tokens("The quick,brown\tfox!\n(jumps) [over]\r{lazy}:dogs;'end'") {
		got = append(got, token)
	}

	want := []string{"The", "quick", "brown", "fox", "jumps", "over", "lazy", "dogs", "end"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d mismatch: %q vs %q", i, got[i], want[i])
		}
	}
}

func TestTokensKeepsNonSeparatorPunctuation(t *testing.T) {
	// Digits and dashes are not separators; they stay inside the raw token
	// and are discarded later by normalization.
	var got []string
	for token := range Tokens("co-op 42nd") {
		got = append(got, token)
	}
	if len(got) != 2 || got[0] != "co-op" || got[1] != "42nd" {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestTokensRestartable(t *testing.T) {
	seq := Tokens("alpha beta gamma")

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 3 || second != 3 {
		t.Fatalf("expected 3 tokens on both passes, got %d then %d", first, second)
	}
}

func TestTokensEarlyStop(t *testing.T) {
	count := 0
	for range Tokens("one two three four") {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected early stop after 2 tokens, got %d", count)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"co-op", "coop"},
		{"42nd", "nd"},
		{"C3PO", "cpo"},
		{"1234", ""},
		{"", ""},
		{"already", "already"},
		{"caf\xc3\xa9", "caf"}, // non-ASCII bytes are dropped
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Hello", "co-op", "MiXeD123CaSe", "plain"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
