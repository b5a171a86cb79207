package httpapi

import (
	"net/http"
	"path/filepath"
)

// servePage serves one file from the pages directory.
func servePage(dir, name string) http.HandlerFunc {
	path := filepath.Join(dir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		http.ServeFile(w, r, path)
	}
}
