package xdom

import "testing"

func TestWildcardToRegex(t *testing.T) {
	cases := []struct {
		pattern, input string
		want           bool
	}{
		{"item*", "item1", true},
		{"item*", "other", false},
		{"*.xml", "file.xml", true},
		{"*.xml", "file.json", false},
		{"a.b", "a.b", true},
		{"a.b", "axb", false}, // '.' must be escaped, not treated as regex any-char
		{"ITEM*", "item1", true},
	}
	for _, c := range cases {
		re, err := wildcardToRegex(c.pattern)
		if err != nil {
			t.Fatalf("compile %q: %v", c.pattern, err)
		}
		if got := re.MatchString(c.input); got != c.want {
			t.Errorf("pattern %q vs %q: got %v want %v", c.pattern, c.input, got, c.want)
		}
	}
}

func TestEntityRoundTrip(t *testing.T) {
	decoded := decodeEntities("a &amp; b &lt;c&gt; &apos;d&apos; &quot;e&quot; &#65; &#x42;")
	want := `a & b <c> 'd' "e" A B`
	if decoded != want {
		t.Fatalf("got %q want %q", decoded, want)
	}
	encoded := encodeEntities(`a & b < c > 'd' "e"`)
	wantEnc := "a &amp; b &lt; c &gt; &apos;d&apos; &quot;e&quot;"
	if encoded != wantEnc {
		t.Fatalf("got %q want %q", encoded, wantEnc)
	}
}

func TestEntityUnknownReferenceLeftVerbatim(t *testing.T) {
	got := decodeEntities("a &foo; b")
	if got != "a &foo; b" {
		t.Fatalf("got %q", got)
	}
}
