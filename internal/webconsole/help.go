// ABOUTME: Renders the embedded markdown help page with goldmark
// ABOUTME: Conversion happens once at startup; failures fall back to a short notice

package webconsole

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"
)

const helpFile = "help/ayuda.md"

func renderHelp(logger *slog.Logger) template.HTML {
	md, err := templateFS.ReadFile(helpFile)
	if err != nil {
		logger.Error("failed to read help content", "file", helpFile, "error", err)
		return template.HTML("<p>Ayuda no disponible.</p>")
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(md, &buf); err != nil {
		logger.Error("failed to convert markdown", "error", err)
		return template.HTML("<p>Ayuda no disponible.</p>")
	}
	return template.HTML(buf.String())
}
