package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), FileName)
}

func sampleState() *State {
	last := "2026-08-25T09:30:00Z"
	return &State{
		TotalPomodoros:   7,
		TotalShortBreaks: 5,
		TotalLongBreaks:  1,
		LastSession:      &last,
		Config: Config{
			KeyWorkDuration:   1500,
			KeyShortBreak:     300,
			KeyLongBreak:      900,
			KeyLongBreakEvery: 4,
		},
	}
}

func TestLoadMissing(t *testing.T) {
	st, origin, err := Load(testPath(t))
	if err != nil {
		t.Fatal(err)
	}
	if origin != OriginMissing {
		t.Fatalf("expected OriginMissing, got %v", origin)
	}
	if !reflect.DeepEqual(st, New()) {
		t.Fatalf("expected zero state, got %+v", st)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := testPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, origin, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if origin != OriginCorrupt {
		t.Fatalf("expected OriginCorrupt, got %v", origin)
	}
	if st.TotalPomodoros != 0 || st.LastSession != nil || len(st.Config) != 0 {
		t.Fatalf("expected zero state, got %+v", st)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := testPath(t)
	want := sampleState()

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, origin, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if origin != OriginFile {
		t.Fatalf("expected OriginFile, got %v", origin)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	// Saving what was loaded must reproduce the same file.
	if err := Save(path, got); err != nil {
		t.Fatal(err)
	}
	again, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again, want) {
		t.Fatalf("second round trip mismatch: %+v", again)
	}
}

func TestSaveZeroState(t *testing.T) {
	path := testPath(t)
	if err := Save(path, New()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, `"last_session": null`) {
		t.Fatalf("expected null last_session, got:\n%s", text)
	}
	if !strings.Contains(text, `"config": {}`) {
		t.Fatalf("expected empty config object, got:\n%s", text)
	}
}

func TestLoadPartialFields(t *testing.T) {
	path := testPath(t)
	if err := os.WriteFile(path, []byte(`{"total_pomodoros": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}

	st, origin, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if origin != OriginFile {
		t.Fatalf("expected OriginFile, got %v", origin)
	}
	if st.TotalPomodoros != 3 {
		t.Fatalf("expected 3 pomodoros, got %d", st.TotalPomodoros)
	}
	if st.TotalShortBreaks != 0 || st.TotalLongBreaks != 0 {
		t.Fatalf("expected zero break counters, got %+v", st)
	}
	if st.LastSession != nil {
		t.Fatalf("expected nil last session, got %q", *st.LastSession)
	}
	if st.Config == nil {
		t.Fatal("expected non-nil config")
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := testPath(t)
	payload := `{"total_pomodoros": 1, "future_field": "x", "config": {"work_duration": 60}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	st, origin, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if origin != OriginFile {
		t.Fatalf("expected OriginFile, got %v", origin)
	}
	if st.Config[KeyWorkDuration] != 60 {
		t.Fatalf("expected work_duration 60, got %d", st.Config[KeyWorkDuration])
	}
}

func TestDelete(t *testing.T) {
	path := testPath(t)

	existed, err := Delete(path)
	if err != nil {
		t.Fatal(err)
	}
	if existed {
		t.Fatal("expected no file to delete")
	}

	if err := Save(path, sampleState()); err != nil {
		t.Fatal(err)
	}
	existed, err = Delete(path)
	if err != nil {
		t.Fatal(err)
	}
	if !existed {
		t.Fatal("expected file to exist")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected file to be gone")
	}

	st, origin, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if origin != OriginMissing || st.TotalPomodoros != 0 {
		t.Fatalf("expected zero state after delete, got origin=%v state=%+v", origin, st)
	}
}

func TestFileShape(t *testing.T) {
	path := testPath(t)
	if err := Save(path, sampleState()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"total_pomodoros", "total_short_breaks", "total_long_breaks", "last_session", "config"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing key %q in state file", key)
		}
	}
}
