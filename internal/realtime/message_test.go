package realtime

import "testing"

func TestParseInbound(t *testing.T) {
	cases := []struct {
		frame string
		text  string
		ok    bool
	}{
		{`{"event":"chat message","data":"hello"}`, "hello", true},
		{`{"event":"chat message","data":"  padded  "}`, "  padded  ", true},
		{`{"event":"chat message","data":"   "}`, "", false},
		{`{"event":"chat message","data":42}`, "", false},
		{`{"event":"chat message","data":{"text":"hi"}}`, "", false},
		{`{"event":"chat message"}`, "", false},
		{`{"event":"typing","data":"hello"}`, "", false},
		{`not json`, "", false},
		{`"hello"`, "", false},
	}
	for _, tc := range cases {
		text, ok := parseInbound([]byte(tc.frame))
		if ok != tc.ok || text != tc.text {
			t.Fatalf("parseInbound(%s) = (%q, %v), want (%q, %v)", tc.frame, text, ok, tc.text, tc.ok)
		}
	}
}

func TestOriginPatterns(t *testing.T) {
	got := OriginPatterns([]string{"*", "https://swap.campus.edu/", " http://localhost:3000 ", ""})
	want := []string{"*", "swap.campus.edu", "localhost:3000"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
