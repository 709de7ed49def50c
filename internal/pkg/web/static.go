package web

import (
	"net/http"
	"strings"
)

// FilesOnly serves files from dir without directory listings: any request
// naming a directory is a 404, so bucket contents cannot be enumerated.
func FilesOnly(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
