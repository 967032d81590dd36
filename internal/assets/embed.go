// Package assets serves the console's static files embedded via go:embed.
// URLs carry a content hash so that browsers can cache them forever.
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFS embed.FS

// Prefix is the URL path the file server is mounted at.
const Prefix = "/static/"

// versions maps file names to the first bytes of their SHA-256.
var versions = map[string]string{}

func init() {
	_ = fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := staticFS.ReadFile(p)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		versions[strings.TrimPrefix(p, "static/")] = hex.EncodeToString(sum[:])[:12]
		return nil
	})
}

// URL returns the versioned URL of an embedded file, for example
// "/static/console.css?v=1a2b3c4d5e6f". Unknown names get no version.
func URL(name string) string {
	if v, ok := versions[name]; ok {
		return Prefix + name + "?v=" + v
	}
	return Prefix + name
}

// mimeFromExt returns the MIME type for a file extension.
func mimeFromExt(ext string) string {
	switch ext {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".svg":
		return "image/svg+xml"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}

// FileServer returns an http.Handler serving the embedded files. Requests
// whose v parameter matches the file's current version get immutable cache
// headers; everything else gets no-cache. Paths are relative to Prefix.
func FileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("assets: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if ext := strings.ToLower(path.Ext(name)); ext != "" {
			w.Header().Set("Content-Type", mimeFromExt(ext))
		}

		if v := r.URL.Query().Get("v"); v != "" && v == versions[name] {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		fileServer.ServeHTTP(w, r)
	})
}
