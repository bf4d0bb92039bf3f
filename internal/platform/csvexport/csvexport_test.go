package csvexport

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func record(t *testing.T, pairs ...any) Record {
	t.Helper()
	r := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		value, err := Of(pairs[i+1])
		if err != nil {
			t.Fatalf("Of(%v) error = %v", pairs[i+1], err)
		}
		r.Set(pairs[i].(string), value)
	}
	return r
}

func TestEncodeBulkFillsMissingKeys(t *testing.T) {
	t.Parallel()

	records := []Record{
		record(t, "a", 1, "b", "x"),
		record(t, "a", 2),
	}
	got, ok := EncodeBulk(records)
	if !ok {
		t.Fatal("expected ok")
	}
	want := "a,b\n\"1\",\"x\"\n\"2\",\"\""
	if string(got) != want {
		t.Fatalf("EncodeBulk() = %q, want %q", got, want)
	}
}

func TestEncodeBulkEmptyIsNoop(t *testing.T) {
	t.Parallel()

	got, ok := EncodeBulk(nil)
	if ok || got != nil {
		t.Fatalf("EncodeBulk(nil) = (%q, %t), want (nil, false)", got, ok)
	}
}

func TestHeaderUsesFirstSeenOrder(t *testing.T) {
	t.Parallel()

	records := []Record{
		record(t, "name", "Ana"),
		record(t, "email", "b@example.com", "name", "Bo"),
		record(t, "role", "admin"),
	}
	header := Header(records)
	want := []string{"name", "email", "role"}
	if len(header) != len(want) {
		t.Fatalf("Header() = %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("Header() = %v, want %v", header, want)
		}
	}
}

func TestEncodeBulkValueKinds(t *testing.T) {
	t.Parallel()

	nested, err := Nested(map[string]any{"city": "Lisbon"})
	if err != nil {
		t.Fatalf("Nested() error = %v", err)
	}
	r := NewRecord()
	r.Set("n", Float(2.5))
	r.Set("ok", Bool(true))
	r.Set("none", Null())
	r.Set("addr", nested)
	r.Set("quote", String(`say "hi"`))

	got, ok := EncodeBulk([]Record{r})
	if !ok {
		t.Fatal("expected ok")
	}
	want := "n,ok,none,addr,quote\n\"2.5\",\"true\",\"\",\"{\"\"city\"\":\"\"Lisbon\"\"}\",\"say \"\"hi\"\"\""
	if string(got) != want {
		t.Fatalf("EncodeBulk() = %q, want %q", got, want)
	}
}

func TestEncodeSingle(t *testing.T) {
	t.Parallel()

	got, ok := EncodeSingle(record(t, "id", "u-1", "seats", 3))
	if !ok {
		t.Fatal("expected ok")
	}
	if string(got) != `"u-1","3"` {
		t.Fatalf("EncodeSingle() = %q", got)
	}
	if _, ok := EncodeSingle(NewRecord()); ok {
		t.Fatal("expected empty record to be a no-op")
	}
}

func TestRecordSetKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	r := NewRecord()
	r.Set("a", Int(1))
	r.Set("b", Int(2))
	r.Set("a", Int(3))
	keys := r.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v", keys)
	}
	value, ok := r.Get("a")
	if !ok || value.Text() != "3" {
		t.Fatalf("Get(a) = %q, %t", value.Text(), ok)
	}

	var zero Record
	zero.Set("x", String("y"))
	if zero.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", zero.Len())
	}
}

func TestRecordCopyIsIndependent(t *testing.T) {
	t.Parallel()

	a := NewRecord()
	a.Set("x", Int(1))
	b := a
	b.Set("y", Int(2))
	a.Set("y", Int(3))

	if keys := a.Keys(); len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Fatalf("a.Keys() = %v, want [x y]", keys)
	}
	got, ok := EncodeBulk([]Record{a})
	if !ok {
		t.Fatal("expected ok")
	}
	if want := "x,y\n\"1\",\"3\""; string(got) != want {
		t.Fatalf("EncodeBulk(a) = %q, want %q", got, want)
	}
	if value, _ := b.Get("y"); value.Text() != "2" {
		t.Fatalf("b.Get(y) = %q, want 2", value.Text())
	}

	c := b
	c.Set("z", Int(4))
	b.Set("w", Int(5))
	if keys := c.Keys(); len(keys) != 3 || keys[2] != "z" {
		t.Fatalf("c.Keys() = %v, want [x y z]", keys)
	}
	if _, ok := c.Get("w"); ok {
		t.Fatal("c sees a key set on b")
	}
}

type (
	seatCount  int
	enabled    bool
	byteCount  uint32
	ratio      float64
	regionCode string
)

func TestOfClassifiesValues(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
	var nilTime *time.Time
	tests := []struct {
		in       any
		wantKind Kind
		wantText string
	}{
		{in: nil, wantKind: KindNull, wantText: ""},
		{in: "x", wantKind: KindString, wantText: "x"},
		{in: 42, wantKind: KindNumber, wantText: "42"},
		{in: int64(-7), wantKind: KindNumber, wantText: "-7"},
		{in: uint64(9), wantKind: KindNumber, wantText: "9"},
		{in: 0.1, wantKind: KindNumber, wantText: "0.1"},
		{in: float32(1.5), wantKind: KindNumber, wantText: "1.5"},
		{in: math.Inf(1), wantKind: KindNumber, wantText: "Infinity"},
		{in: false, wantKind: KindBool, wantText: "false"},
		{in: ts, wantKind: KindString, wantText: "2026-03-04T05:06:07.008Z"},
		{in: time.Time{}, wantKind: KindNull, wantText: ""},
		{in: nilTime, wantKind: KindNull, wantText: ""},
		{in: []int{1, 2}, wantKind: KindNested, wantText: "[1,2]"},
		{in: seatCount(12), wantKind: KindNumber, wantText: "12"},
		{in: enabled(true), wantKind: KindBool, wantText: "true"},
		{in: byteCount(7), wantKind: KindNumber, wantText: "7"},
		{in: ratio(0.25), wantKind: KindNumber, wantText: "0.25"},
		{in: regionCode("eu"), wantKind: KindString, wantText: "eu"},
		{in: struct {
			A int `json:"a"`
		}{A: 1}, wantKind: KindNested, wantText: `{"a":1}`},
	}
	for _, tc := range tests {
		got, err := Of(tc.in)
		if err != nil {
			t.Fatalf("Of(%#v) error = %v", tc.in, err)
		}
		if got.Kind() != tc.wantKind || got.Text() != tc.wantText {
			t.Fatalf("Of(%#v) = (%s, %q), want (%s, %q)", tc.in, got.Kind(), got.Text(), tc.wantKind, tc.wantText)
		}
	}
}

func TestFloatFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 2.5, want: "2.5"},
		{in: 123456.5, want: "123456.5"},
		{in: 0.000001, want: "0.000001"},
		{in: 1e20, want: "100000000000000000000"},
		{in: 1e21, want: "1e+21"},
		{in: -1e21, want: "-1e+21"},
		{in: 1.5e300, want: "1.5e+300"},
		{in: 1e-7, want: "1e-7"},
		{in: 1.5e-7, want: "1.5e-7"},
		{in: -2e-10, want: "-2e-10"},
		{in: math.NaN(), want: "NaN"},
		{in: math.Inf(-1), want: "-Infinity"},
	}
	for _, tc := range tests {
		if got := Float(tc.in).Text(); got != tc.want {
			t.Fatalf("Float(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOfRejectsUnsupportedTypes(t *testing.T) {
	t.Parallel()

	if _, err := Of(make(chan int)); err == nil {
		t.Fatal("expected error for channel")
	}
	if _, err := Nested(map[string]any{"f": func() {}}); err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestFilenames(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 9, 30, 0, 123_000_000, time.FixedZone("X", 3600))
	if got := BulkFilename(now); got != "csv_data_2026-10-18T08:30:00.123Z.csv" {
		t.Fatalf("BulkFilename() = %q", got)
	}
	if got := SingleFilename(now); got != "csv_2026-10-18T08:30:00.123Z.csv" {
		t.Fatalf("SingleFilename() = %q", got)
	}
}

func TestWriteBulkAttachment(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := httptest.NewRecorder()
	if err := WriteBulk(rec, []Record{record(t, "a", 1)}, now); err != nil {
		t.Fatalf("WriteBulk() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	wantDisposition := `attachment; filename="csv_data_2026-01-02T03:04:05.000Z.csv"`
	if got := rec.Header().Get("Content-Disposition"); got != wantDisposition {
		t.Fatalf("Content-Disposition = %q, want %q", got, wantDisposition)
	}
	if body := rec.Body.String(); body != "a\n\"1\"" {
		t.Fatalf("body = %q", body)
	}
}

func TestWriteEmptyAnswersNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := WriteBulk(rec, nil, time.Now()); err != nil {
		t.Fatalf("WriteBulk() error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Header().Get("Content-Disposition") != "" || rec.Body.Len() != 0 {
		t.Fatal("expected no attachment for empty export")
	}

	rec = httptest.NewRecorder()
	if err := WriteSingle(rec, NewRecord(), time.Now()); err != nil {
		t.Fatalf("WriteSingle() error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
