package capture

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"+1 555 111 2222", "+15551112222"},
		{"1 (555) 123-4567", "+15551234567"},
		{"1-555-123-4567", "+15551234567"},
		{"+44 20 7946 0958", "+442079460958"},
		{"15551112222", "+15551112222"},
		{"++1..555", "+1555"},
		{"phone", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePhone_PunctuationInsensitive(t *testing.T) {
	a := NormalizePhone("1" + "(555) 123-4567")
	b := NormalizePhone("1" + "555-123-4567")
	if a != b {
		t.Errorf("%q != %q", a, b)
	}
}
