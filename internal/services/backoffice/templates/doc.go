// Package templates renders backoffice pages as templ components.
//
// Markup lives in the .templ files; the _templ.go files are generated from
// them and must not be edited by hand.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate
