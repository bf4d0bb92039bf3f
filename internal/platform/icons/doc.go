// Package icons defines the icon identifiers used by the backoffice chrome.
//
// The catalog maps stable icon identifiers to human-readable labels and to
// Lucide sprite symbols, so templates reference an icon by intent and the
// sprite decides how it is drawn.
package icons
