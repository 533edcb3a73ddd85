// ABOUTME: Tests for raw item normalization and the guid union decoder
// ABOUTME: Covers field fallbacks and the tolerated date layouts

package feedparse

import (
	"encoding/json"
	"testing"
	"time"
)

func TestGUIDUnmarshalString(t *testing.T) {
	var g GUID
	if err := json.Unmarshal([]byte(`"abc-123"`), &g); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if g.Value != "abc-123" {
		t.Errorf("Value = %q, want %q", g.Value, "abc-123")
	}
}

func TestGUIDUnmarshalObject(t *testing.T) {
	var g GUID
	if err := json.Unmarshal([]byte(`{"value": "tag:example.com,2024:1", "isPermaLink": false}`), &g); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if g.Value != "tag:example.com,2024:1" {
		t.Errorf("Value = %q, want %q", g.Value, "tag:example.com,2024:1")
	}
}

func TestGUIDUnmarshalInvalid(t *testing.T) {
	var g GUID
	if err := json.Unmarshal([]byte(`42`), &g); err == nil {
		t.Error("expected error for non-string, non-object guid")
	}
}

func TestGUIDMarshalRoundTrip(t *testing.T) {
	g := GUID{Value: "abc"}
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"abc"` {
		t.Errorf("marshal = %s, want %q", data, `"abc"`)
	}
}

func TestRawItemAuthorFallsBackToCreator(t *testing.T) {
	var item RawItem
	if err := json.Unmarshal([]byte(`{"title": "Post", "creator": "Jane"}`), &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.Author != "Jane" {
		t.Errorf("Author = %q, want %q", item.Author, "Jane")
	}
}

func TestRawItemAuthorWinsOverCreator(t *testing.T) {
	var item RawItem
	data := `{"author": "Alex", "creator": "Jane"}`
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.Author != "Alex" {
		t.Errorf("Author = %q, want %q", item.Author, "Alex")
	}
}

func TestRawItemDateFallsBackToPubDate(t *testing.T) {
	var item RawItem
	data := `{"title": "Post", "pubDate": "Mon, 02 Jan 2006 15:04:05 -0700"}`
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.PublishedRaw != "Mon, 02 Jan 2006 15:04:05 -0700" {
		t.Errorf("PublishedRaw = %q", item.PublishedRaw)
	}
	if item.PublishedAt == nil {
		t.Fatal("PublishedAt not parsed")
	}
}

func TestRawItemISODateWinsOverPubDate(t *testing.T) {
	var item RawItem
	data := `{"isoDate": "2024-06-01T12:00:00Z", "pubDate": "Sat, 01 Jun 2024 12:00:00 GMT"}`
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.PublishedRaw != "2024-06-01T12:00:00Z" {
		t.Errorf("PublishedRaw = %q, want isoDate", item.PublishedRaw)
	}
}

func TestRawItemMalformedDateLeavesNil(t *testing.T) {
	var item RawItem
	if err := json.Unmarshal([]byte(`{"isoDate": "next tuesday"}`), &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if item.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil for malformed date", item.PublishedAt)
	}
	if item.PublishedRaw != "next tuesday" {
		t.Errorf("PublishedRaw = %q, raw string should be preserved", item.PublishedRaw)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // RFC3339, empty means nil expected
	}{
		{"rfc3339", "2024-06-01T12:30:00Z", "2024-06-01T12:30:00Z"},
		{"rfc3339 offset", "2024-06-01T12:30:00+02:00", "2024-06-01T12:30:00+02:00"},
		{"iso no zone", "2024-06-01T12:30:00", "2024-06-01T12:30:00Z"},
		{"rfc1123z", "Sat, 01 Jun 2024 12:30:00 +0000", "2024-06-01T12:30:00Z"},
		{"rfc1123", "Sat, 01 Jun 2024 12:30:00 GMT", "2024-06-01T12:30:00Z"},
		{"date only", "2024-06-01", "2024-06-01T00:00:00Z"},
		{"empty", "", ""},
		{"garbage", "not a date", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.want == "" {
				if got != nil {
					t.Errorf("ParseDate(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseDate(%q) = nil, want %s", tt.input, tt.want)
			}
			want, err := time.Parse(time.RFC3339, tt.want)
			if err != nil {
				t.Fatalf("bad test fixture: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}
