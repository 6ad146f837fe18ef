package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath returns the local path of a file URI, or "" for other schemes.
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return filepath.Clean(filepath.FromSlash(path))
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// canonicalURI normalises client spellings of the same file (escaping,
// trailing dots) so documents are keyed once. Non-file URIs pass through.
func canonicalURI(uri string) string {
	path := uriToPath(uri)
	if path == "" {
		return uri
	}
	return pathToURI(path)
}
