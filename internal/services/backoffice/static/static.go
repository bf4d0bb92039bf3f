// Package static embeds the stylesheet and images served by the assets
// module.
package static

import "embed"

// FS exposes backoffice static assets for HTTP serving.
//
//go:embed app.css images/*.svg
var FS embed.FS
