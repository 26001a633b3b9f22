package model

import (
	"testing"
	"time"
)

func TestSplitStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       Item
		wantStatus bool
		wantRest   int
	}{
		{name: "status and title", body: Item{"status": "recovered", "title": "X"}, wantStatus: true, wantRest: 1},
		{name: "title only", body: Item{"title": "X"}, wantStatus: false, wantRest: 1},
		{name: "empty status ignored", body: Item{"status": "", "title": "X"}, wantStatus: false, wantRest: 1},
		{name: "null status ignored", body: Item{"status": nil}, wantStatus: false, wantRest: 0},
		{name: "id dropped", body: Item{"_id": "abc", "title": "X"}, wantStatus: false, wantRest: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rest, ok := SplitStatus(tt.body)
			if ok != tt.wantStatus {
				t.Fatalf("status present = %v, want %v", ok, tt.wantStatus)
			}
			if len(rest) != tt.wantRest {
				t.Fatalf("rest = %#v, want %d fields", rest, tt.wantRest)
			}
			if _, has := rest["status"]; has {
				t.Fatal("status leaked into rest")
			}
		})
	}
}

func TestParseRecoveryDate(t *testing.T) {
	want := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)

	for _, in := range []any{"2024-12-24", "2024-12-24T00:00:00Z", "2024-12-24T00:00", float64(want.UnixMilli())} {
		got := ParseRecoveryDate(in)
		if got == nil || !got.Equal(want) {
			t.Errorf("ParseRecoveryDate(%v) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []any{nil, "yesterday", true} {
		if got := ParseRecoveryDate(in); got != nil {
			t.Errorf("ParseRecoveryDate(%v) = %v, want nil", in, got)
		}
	}
}
