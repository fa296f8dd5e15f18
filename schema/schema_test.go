package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   Kind
	}{
		{
			name:   "modern",
			header: []string{"ride_id", "rideable_type", "started_at", "ended_at", "start_station_name", "start_station_id", "member_casual"},
			want:   KindModern,
		},
		{
			name:   "modern detected by member_casual alone",
			header: []string{"started_at", "ended_at", "member_casual"},
			want:   KindModern,
		},
		{
			name:   "legacy lowercase",
			header: []string{"tripduration", "starttime", "stoptime", "start station id", "start station name"},
			want:   KindLegacy,
		},
		{
			name:   "legacy title case",
			header: []string{"Trip Duration", "Start Time", "Stop Time", "Start Station ID"},
			want:   KindLegacyTitle,
		},
		{
			name:   "unknown",
			header: []string{"foo", "bar", "baz"},
			want:   KindUnknown,
		},
		{
			name:   "empty",
			header: []string{},
			want:   KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.header); got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "201409-citibike-tripdata.csv")
	content := "\"tripduration\",\"starttime\",\"stoptime\",\"start station id\"\n600,\"2014-09-01 00:00:00\",\"2014-09-01 00:10:00\",519\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	kind, err := DetectFile(path)
	if err != nil {
		t.Fatalf("DetectFile: %v", err)
	}
	if kind != KindLegacy {
		t.Errorf("kind = %s, want legacy", kind)
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLayoutFor(t *testing.T) {
	for _, kind := range []Kind{KindModern, KindLegacy, KindLegacyTitle} {
		l, ok := LayoutFor(kind)
		if !ok {
			t.Fatalf("no layout for %s", kind)
		}
		if l.StartID == "" || l.EndID == "" || l.StartTime == "" {
			t.Errorf("layout %s is missing required columns", kind)
		}
	}
	if _, ok := LayoutFor(KindUnknown); ok {
		t.Error("unknown kind must have no layout")
	}
}
