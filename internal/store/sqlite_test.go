package store

import (
	"io"
	"testing"

	"bigo/internal/analysis"
	"bigo/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_PutGet(t *testing.T) {
	s := openTestStore(t)

	rec := sampleRecord("src/a.js", "pairs", 3, analysis.Quadratic)
	if err := s.Put(rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := s.Get(rec.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("record not found")
	}
	if got.Time != analysis.Quadratic || got.Space != analysis.Constant {
		t.Errorf("verdict = %s/%s, want %s/%s", got.Time, got.Space, analysis.Quadratic, analysis.Constant)
	}
	if !got.CapturedAt.Equal(rec.CapturedAt) {
		t.Errorf("capturedAt = %v, want %v", got.CapturedAt, rec.CapturedAt)
	}

	_, ok, err = s.Get(Key{Doc: "nope", Name: "nope", StartLine: 1})
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Error("expected miss for unknown key")
	}
}

func TestSQLiteStore_UpsertSameKey(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(sampleRecord("a.js", "f", 0, analysis.Linear)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(sampleRecord("a.js", "f", 0, analysis.Exponential)); err != nil {
		t.Fatalf("put again: %v", err)
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 1 {
		t.Errorf("len = %d, want 1", n)
	}

	got, _, err := s.Get(Key{Doc: "a.js", Name: "f", StartLine: 0})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != analysis.Exponential {
		t.Errorf("time = %s, want %s", got.Time, analysis.Exponential)
	}
}

func TestSQLiteStore_ListOrder(t *testing.T) {
	s := openTestStore(t)

	for _, rec := range []Record{
		sampleRecord("b.js", "later", 10, analysis.Linear),
		sampleRecord("a.js", "second", 5, analysis.Linear),
		sampleRecord("a.js", "first", 0, analysis.Linear),
	} {
		if err := s.Put(rec); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	recs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	wantOrder := []string{"first", "second", "later"}
	if len(recs) != len(wantOrder) {
		t.Fatalf("got %d records, want %d", len(recs), len(wantOrder))
	}
	for i, name := range wantOrder {
		if recs[i].Name != name {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].Name, name)
		}
	}
}

func TestSQLiteStore_PutBatch(t *testing.T) {
	s := openTestStore(t)

	batch := []Record{
		sampleRecord("x.py", "a", 0, analysis.Linear),
		sampleRecord("x.py", "b", 10, analysis.Constant),
		sampleRecord("y.py", "c", 0, analysis.Linearithmic),
	}
	if err := s.PutBatch(batch); err != nil {
		t.Fatalf("put batch: %v", err)
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 3 {
		t.Errorf("len = %d, want 3", n)
	}
}

func TestSQLiteStore_Stats(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutBatch([]Record{
		sampleRecord("a.js", "f", 0, analysis.Linear),
		sampleRecord("a.js", "g", 9, analysis.Linear),
		sampleRecord("b.js", "h", 0, analysis.Linear),
	}); err != nil {
		t.Fatalf("put batch: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Records != 3 {
		t.Errorf("records = %d, want 3", stats.Records)
	}
	if stats.Documents != 2 {
		t.Errorf("documents = %d, want 2", stats.Documents)
	}
	if stats.Path == "" {
		t.Error("stats should carry the db path")
	}
}

func TestSQLiteStore_Purge(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(sampleRecord("a.js", "f", 0, analysis.Linear)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Purge(); err != nil {
		t.Fatalf("purge: %v", err)
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 0 {
		t.Errorf("len after purge = %d, want 0", n)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(sampleRecord("a.js", "f", 0, analysis.Logarithmic)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(Key{Doc: "a.js", Name: "f", StartLine: 0})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("record lost across reopen")
	}
	if got.Time != analysis.Logarithmic {
		t.Errorf("time = %s, want %s", got.Time, analysis.Logarithmic)
	}
}
