package csvexport

import (
	"mime"
	"net/http"
	"strconv"
	"time"
)

const contentType = "text/csv; charset=utf-8"

// WriteBulk sends records as a CSV attachment. Empty input answers 204 with
// no body so no file is created on the client.
func WriteBulk(w http.ResponseWriter, records []Record, now time.Time) error {
	body, ok := EncodeBulk(records)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	return writeAttachment(w, BulkFilename(now), body)
}

// WriteSingle sends one record as a CSV attachment. An empty record answers
// 204 with no body.
func WriteSingle(w http.ResponseWriter, record Record, now time.Time) error {
	body, ok := EncodeSingle(record)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	return writeAttachment(w, SingleFilename(now), body)
}

func writeAttachment(w http.ResponseWriter, filename string, body []byte) error {
	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	header.Set("Content-Length", strconv.Itoa(len(body)))
	header.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(body)
	return err
}
