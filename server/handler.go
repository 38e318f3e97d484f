package server

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/acme/autocert"

	"github.com/jacobpatterson1549/selene-tiles/log"
)

type templateData struct {
	Name        string
	ShortName   string
	Description string
	Version     string
}

const (
	// HeaderContentType is used to set the document type header on http responses.
	HeaderContentType = "Content-Type"
	// HeaderCacheControl is used to tell browsers how long to cache http responses.
	HeaderCacheControl = "Cache-Control"
	// HeaderStrictTransportSecurity is used to tell browsers the site should only be accessed using HTTPS.
	HeaderStrictTransportSecurity = "Strict-Transport-Security"
	// HeaderLocation is used to tell browsers to request a different document.
	HeaderLocation = "Location"
	// HeaderAcceptEncoding is specified by the browser to tell the server what types of document encoding it can handle.
	HeaderAcceptEncoding = "Accept-Encoding"
	// HeaderContentEncoding is used to tell browsers how the document is encoded.
	HeaderContentEncoding = "Content-Encoding"
	// rootTemplatePath is the name of the template for the root of the site.
	rootTemplatePath = "/index.html"
	// tilesPath is the prefix of tile image requests.
	tilesPath = "/tiles/"
)

// newTemplateData configures the structure of variables to insert into templates.
func (cfg Config) newTemplateData() *templateData {
	data := templateData{
		Name:        "selene-tiles",
		ShortName:   "tiles",
		Description: "tracks which tiles of a board game are used",
		Version:     cfg.Version,
	}
	return &data
}

// httpHandler creates a handler for HTTP endpoints.
// ACME challenges are answered and other requests are redirected to HTTPS.
func (cfg Config) httpHandler(httpsRedirectHandler http.Handler, certManager *autocert.Manager, log log.Logger) http.Handler {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cfg.Challenge.isFor(r.URL.Path) {
			httpsRedirectHandler.ServeHTTP(w, r)
			return
		}
		if err := cfg.Challenge.handle(w); err != nil {
			log.Printf("serving acme challenge: %v", err)
		}
	})
	if certManager != nil {
		return certManager.HTTPHandler(h)
	}
	return h
}

// httpsHandler creates a handler for HTTPS endpoints.
// Non-TLS requests are redirected to HTTPS.  GET requests are handled by more specific handlers.
func (cfg Config) httpsHandler(httpHandler, httpsRedirectHandler http.Handler, p Parameters, template *template.Template, monitor http.Handler) http.HandlerFunc {
	getHandler := p.getHandler(cfg, template, monitor)
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.TLS == nil && !cfg.NoTLSRedirect && cfg.hasTLS():
			httpHandler.ServeHTTP(w, r)
		case r.TLS == nil && cfg.NoTLSRedirect && !hasSecHeader(r):
			httpsRedirectHandler.ServeHTTP(w, r)
		case r.Method == "GET", r.Method == "HEAD":
			getHandler.ServeHTTP(w, r)
		default:
			httpError(w, http.StatusMethodNotAllowed)
		}
	}
}

// getHandler forwards calls to various endpoints.
func (p Parameters) getHandler(cfg Config, template *template.Template, monitor http.Handler) http.Handler {
	cacheMaxAge := fmt.Sprintf("max-age=%d", cfg.CacheSec)
	data := cfg.newTemplateData()

	templateFileHandler := templateHandler(template, *data, p.Logger)
	staticFileHandler := http.FileServer(http.FS(p.StaticFS))
	templateHandler := fileHandler(templateFileHandler, cacheMaxAge)
	staticHandler := fileHandler(staticFileHandler, cacheMaxAge)
	versionedHandler := versionHandler(staticHandler, cfg.Version)
	tilesHandler := fileHandler(http.StripPrefix(tilesPath, tileFileHandler(p.TilesFS)), cacheMaxAge)
	templatePatterns := []string{rootTemplatePath, "/favicon.svg"}
	staticPatterns := []string{"/robots.txt"}
	versionedPatterns := []string{"/wasm_exec.js", "/main.wasm"}

	getMux := http.NewServeMux()
	for _, p := range templatePatterns {
		getMux.Handle(p, templateHandler)
	}
	for _, p := range staticPatterns {
		getMux.Handle(p, staticHandler)
	}
	for _, p := range versionedPatterns {
		getMux.Handle(p, versionedHandler)
	}
	getMux.Handle(tilesPath, tilesHandler)
	getMux.Handle("/monitor", monitor)
	return rootHandler(getMux)
}

// rootHandler maps requests for / to /index.html.
func rootHandler(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			r.URL.Path = rootTemplatePath
		}
		h.ServeHTTP(w, r)
	}
}

// versionHandler redirects requests that do not have the version query parameter to the url with it.
func versionHandler(h http.Handler, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") == version {
			h.ServeHTTP(w, r)
			return
		}
		u := *r.URL
		q := u.Query()
		q.Set("v", version)
		u.RawQuery = q.Encode()
		http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
	}
}

// tileFileHandler serves tile images from the file system.  Folders are not listed.
func tileFileHandler(fsys fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(fsys))
	return func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) == 0 || strings.HasSuffix(r.URL.Path, "/") {
			httpError(w, http.StatusNotFound)
			return
		}
		fileServer.ServeHTTP(w, r)
	}
}

// fileHandler wraps the handling of the file, add cache-control header and gzip compression, if possible.
func fileHandler(h http.Handler, cacheMaxAge string) http.HandlerFunc {
	cacheControl := func(r *http.Request) string {
		switch r.URL.Path {
		case rootTemplatePath:
			return "no-store"
		}
		return cacheMaxAge
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get(HeaderAcceptEncoding), "gzip") {
			w2 := gzip.NewWriter(w)
			defer w2.Close()
			w = wrappedResponseWriter{
				Writer:         w2,
				ResponseWriter: w,
			}
			w.Header().Add(HeaderContentEncoding, "gzip")
		}
		w.Header().Set(HeaderCacheControl, cacheControl(r))
		w.Header().Set(HeaderStrictTransportSecurity, cacheMaxAge)
		addMimeType(r.URL.Path, w)
		h.ServeHTTP(w, r)
	}
}

// templateHandler servers the file from the data-driven template.  The name is assumed to have a leading slash that is ignored.
// Templates are written a buffer to ensure they execute correctly before they are written to the response
func templateHandler(template *template.Template, data templateData, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[1:] // ignore leading slash
		var buf bytes.Buffer
		if err := template.ExecuteTemplate(&buf, name, data); err != nil {
			err = fmt.Errorf("rendering template: %v", err)
			writeInternalError(err, log, w)
			return
		}
		w.Write(buf.Bytes())
	}
}

// httpsRedirectHandler redirects the request to https.
func httpsRedirectHandler(httpsPort int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		// derived from net.SplitHostPort, but does not throw error :
		lastColonIndex := strings.LastIndex(host, ":")
		if lastColonIndex >= 0 {
			host = host[:lastColonIndex]
		}
		if httpsPort != 443 {
			host += fmt.Sprintf(":%d", httpsPort)
		}
		httpsURI := "https://" + host + r.URL.Path
		http.Redirect(w, r, httpsURI, http.StatusMovedPermanently)
	}
}

// writeInternalError logs and writes the error as an internal server error (500).
func writeInternalError(err error, log log.Logger, w http.ResponseWriter) {
	log.Printf("server error: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// httpError writes the error status code.
func httpError(w http.ResponseWriter, statusCode int) {
	http.Error(w, http.StatusText(statusCode), statusCode)
}

// hasSecHeader returns true if the request has any header starting with "Sec-".
func hasSecHeader(r *http.Request) bool {
	for header := range r.Header {
		if strings.HasPrefix(header, "Sec-") {
			return true
		}
	}
	return false
}

// addMimeType adds the applicable mime type to the response.  Files without extensions are assumed to be text
func addMimeType(fileName string, w http.ResponseWriter) {
	if !strings.Contains(fileName, ".") {
		fileName = ".txt"
	}
	extension := filepath.Ext(fileName)
	mimeType := mime.TypeByExtension(extension)
	w.Header().Add(HeaderContentType, mimeType)
}

// wrappedResponseWriter wraps response writing with another writer.
type wrappedResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

// Write delegates the write to the wrapped writer.
func (wrw wrappedResponseWriter) Write(p []byte) (n int, err error) {
	return wrw.Writer.Write(p)
}
