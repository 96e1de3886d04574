package device

import "testing"

func TestClassifyID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantHost  string
		wantIndex int
		wantZone  bool
	}{
		{
			name:      "hyphenated host with single digit index",
			id:        "11111111-2222-3333-4444-555555555555-2",
			wantHost:  "11111111-2222-3333-4444-555555555555",
			wantIndex: 2,
			wantZone:  true,
		},
		{
			name:      "multi digit index",
			id:        "11111111-2222-3333-4444-555555555555-42",
			wantHost:  "11111111-2222-3333-4444-555555555555",
			wantIndex: 42,
			wantZone:  true,
		},
		{
			name:      "uppercase hex",
			id:        "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE-0",
			wantHost:  "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE",
			wantIndex: 0,
			wantZone:  true,
		},
		{
			name:      "compact host id without group hyphens",
			id:        "0123456789abcdef0123456789abcdef-7",
			wantHost:  "0123456789abcdef0123456789abcdef",
			wantIndex: 7,
			wantZone:  true,
		},
		{name: "plain word id", id: "switch-A"},
		{name: "bare host id without index", id: "11111111-2222-3333-4444-555555555555"},
		{name: "index is not numeric", id: "11111111-2222-3333-4444-555555555555-x"},
		{name: "trailing garbage after index", id: "11111111-2222-3333-4444-555555555555-2-extra"},
		{name: "empty string", id: ""},
		{name: "non hex host", id: "zzzzzzzz-2222-3333-4444-555555555555-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, index, ok := ClassifyID(tt.id)
			if ok != tt.wantZone {
				t.Fatalf("ClassifyID(%q) ok = %v, want %v", tt.id, ok, tt.wantZone)
			}
			if !tt.wantZone {
				return
			}
			if host != tt.wantHost {
				t.Errorf("host = %q, want %q", host, tt.wantHost)
			}
			if index != tt.wantIndex {
				t.Errorf("index = %d, want %d", index, tt.wantIndex)
			}
		})
	}
}
