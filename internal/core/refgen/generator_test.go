package refgen

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		code string
		kind Kind
		seq  int64
		want string
	}{
		{"WH1", KindReceipt, 1, "WH1/IN/0001"},
		{"WH1", KindDelivery, 42, "WH1/OUT/0042"},
		{"main", KindReceipt, 7, "MAIN/IN/0007"},
		{"WH1", KindDelivery, 12345, "WH1/OUT/12345"},
	}

	for _, tt := range tests {
		if got := Format(tt.code, tt.kind, tt.seq); got != tt.want {
			t.Errorf("Format(%q, %s, %d) = %q, want %q", tt.code, tt.kind, tt.seq, got, tt.want)
		}
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		reference string
		want      int64
	}{
		{"WH1/IN/0042", 42},
		{"WH1/OUT/10000", 10000},
		{"WH1/IN/", -1},
		{"WH1/IN/abc", -1},
		{"no-separator", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := ParseSequence(tt.reference); got != tt.want {
			t.Errorf("ParseSequence(%q) = %d, want %d", tt.reference, got, tt.want)
		}
	}
}
