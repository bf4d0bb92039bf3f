// Package storage defines the backoffice records and the persistence
// contracts the HTTP modules depend on. Implementations live in
// sub-packages.
package storage
