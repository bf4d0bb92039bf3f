package csvexport

import (
	"strings"
	"time"
)

// isoLayout matches the millisecond UTC timestamps browsers produce.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Header returns the union of keys across records in first-seen order.
func Header(records []Record) []string {
	seen := map[string]struct{}{}
	var header []string
	for _, record := range records {
		for _, key := range record.keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}
	return header
}

// EncodeBulk renders records as CSV: a bare header row followed by one row of
// quoted fields per record. Keys a record lacks render as "". It reports
// false and returns nil for an empty list.
func EncodeBulk(records []Record) ([]byte, bool) {
	if len(records) == 0 {
		return nil, false
	}
	header := Header(records)

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, record := range records {
		b.WriteByte('\n')
		for i, key := range header {
			if i > 0 {
				b.WriteByte(',')
			}
			value, _ := record.Get(key)
			writeQuoted(&b, value.text)
		}
	}
	return []byte(b.String()), true
}

// EncodeSingle renders one record as a single row of quoted values in key
// order. It reports false for an empty record.
func EncodeSingle(record Record) ([]byte, bool) {
	if record.Len() == 0 {
		return nil, false
	}
	var b strings.Builder
	for i, key := range record.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeQuoted(&b, record.values[key].text)
	}
	return []byte(b.String()), true
}

// BulkFilename names a multi-record export.
func BulkFilename(now time.Time) string {
	return "csv_data_" + now.UTC().Format(isoLayout) + ".csv"
}

// SingleFilename names a one-record export.
func SingleFilename(now time.Time) string {
	return "csv_" + now.UTC().Format(isoLayout) + ".csv"
}

// writeQuoted wraps text in double quotes, doubling embedded quotes.
func writeQuoted(b *strings.Builder, text string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(text, `"`, `""`))
	b.WriteByte('"')
}
