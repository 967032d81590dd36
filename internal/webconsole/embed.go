// ABOUTME: Embeds HTML templates and the help text into the binary using go:embed
// ABOUTME: Provides templateFS for loading views at startup

package webconsole

import "embed"

//go:embed templates/*.html help/*.md
var templateFS embed.FS
