package history_repo

import (
	"bytes"
	"strings"
	"testing"
)

func TestSnapshotCompressionRoundTrip(t *testing.T) {
	repo, err := NewHistoryRepo()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot := []byte(strings.Repeat(`{"reference":"WH1/IN/0042","lines":[{"productName":"Widget"}]}`, 500))
	if len(snapshot) <= compressThreshold {
		t.Fatalf("snapshot too small to exercise compression: %d bytes", len(snapshot))
	}

	compressed := repo.encoder.EncodeAll(snapshot, nil)
	if len(compressed) >= len(snapshot) {
		t.Errorf("compressed %d bytes into %d; expected a reduction on repetitive JSON", len(snapshot), len(compressed))
	}

	decompressed, err := repo.decoder.DecodeAll(compressed, nil)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(decompressed, snapshot) {
		t.Error("round trip altered the snapshot")
	}
}

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"default newest first", "", "created_at DESC, id DESC", false},
		{"ascending field", "product_name", "product_name ASC", false},
		{"descending field", "-created_at", "created_at DESC", false},
		{"unknown field", "snapshot", "", true},
		{"injection attempt", "created_at; DROP TABLE history", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrderBy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseOrderBy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
