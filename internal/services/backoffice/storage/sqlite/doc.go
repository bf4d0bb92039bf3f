// Package sqlite implements the backoffice store on SQLite.
//
// Timestamps are stored as Unix milliseconds in UTC; zero means unset.
package sqlite
