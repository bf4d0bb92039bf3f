// Package csvexport turns flat records into downloadable CSV.
//
// Records map string keys to a closed set of value kinds (string, number,
// boolean, null, nested JSON). A bulk export uses the union of all record
// keys as its header row and fills keys a record lacks with an empty field.
// Every data field is wrapped in double quotes. Exporting nothing is a no-op.
package csvexport
