// Package server runs the http server which serves the tile tracker page and its tile images.
package server

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"
	"unicode"

	"golang.org/x/crypto/acme/autocert"

	"github.com/jacobpatterson1549/selene-tiles/log"
)

type (
	// Server runs the site.
	Server struct {
		log         log.Logger
		runMu       sync.Mutex
		ran         bool
		certManager *autocert.Manager
		HTTPServer  *http.Server
		HTTPSServer *http.Server
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// HTTPPort is the TCP port for server http requests.  All traffic is redirected to the https port.
		HTTPPort int
		// HTTPSPort is the TCP port for server https requests.
		HTTPSPort int
		// StopDur is the maximum duration the server has to shut down.
		StopDur time.Duration
		// CacheSec is the number of seconds some files are cached.
		CacheSec int
		// Version is used to bust caches of files from older server versions.
		Version string
		// TLSCertFile is the path of the public HTTPS TLS certificate file.
		TLSCertFile string
		// TLSKeyFile is the path of the private HTTPS TLS key file.
		TLSKeyFile string
		// AutocertHosts are the domain names certificates are automatically requested for.
		AutocertHosts []string
		// AutocertDir is the folder automatically requested certificates are cached in.
		AutocertDir string
		// Challenge is a manually provisioned ACME HTTP-01 challenge.
		Challenge
		// NoTLSRedirect disables redirection to https from http when true.
		NoTLSRedirect bool
	}

	// Parameters contains the file systems and logger needed to create a new server.
	Parameters struct {
		log.Logger
		StaticFS   fs.FS
		TemplateFS fs.FS
		TilesFS    fs.FS
	}
)

// NewServer creates a Server from the Config.
func (cfg Config) NewServer(p Parameters) (*Server, error) {
	if err := cfg.validate(p); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	template, err := p.parseTemplate()
	if err != nil {
		return nil, err
	}
	monitor := runtimeMonitor{
		hasHTTP: cfg.validHTTPAddr(),
		hasTLS:  cfg.hasTLS(),
	}
	certManager := cfg.certManager()
	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpsAddr := fmt.Sprintf(":%d", cfg.HTTPSPort)
	httpsRedirectHandler := httpsRedirectHandler(cfg.HTTPSPort)
	httpHandler := cfg.httpHandler(httpsRedirectHandler, certManager, p.Logger)
	httpsHandler := cfg.httpsHandler(httpHandler, httpsRedirectHandler, p, template, monitor)
	s := Server{
		log:         p.Logger,
		certManager: certManager,
		HTTPServer: &http.Server{
			Addr:         httpAddr,
			Handler:      httpHandler,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		HTTPSServer: &http.Server{
			Addr:         httpsAddr,
			Handler:      httpsHandler,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Config: cfg,
	}
	if certManager != nil {
		s.HTTPSServer.TLSConfig = certManager.TLSConfig()
	}
	return &s, nil
}

// validate ensures the configuration and parameters have no errors.
func (cfg Config) validate(p Parameters) error {
	if err := p.validate(); err != nil {
		return err
	}
	switch {
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	case cfg.CacheSec < 0:
		return fmt.Errorf("nonnegative cache seconds required")
	case cfg.HTTPSPort <= 0:
		return fmt.Errorf("positive https port required")
	case len(cfg.Version) == 0:
		return fmt.Errorf("version required")
	case len(cfg.TLSCertFile) == 0 != (len(cfg.TLSKeyFile) == 0):
		return fmt.Errorf("both tls certificate and key files are required if either is specified")
	case len(cfg.AutocertHosts) != 0 && len(cfg.TLSCertFile) != 0:
		return fmt.Errorf("automatic certificates cannot be used with tls certificate files")
	case len(cfg.AutocertHosts) != 0 && !cfg.validHTTPAddr():
		return fmt.Errorf("http port required to answer automatic certificate challenges")
	}
	for i, r := range cfg.Version {
		if !unicode.In(r, unicode.Letter, unicode.Digit) {
			return fmt.Errorf("only letters and digits are allowed in version: invalid rune at index %v of '%v': '%v'", i, cfg.Version, string(r))
		}
	}
	return nil
}

// validate ensures that all of the parameters are present.
func (p Parameters) validate() error {
	switch {
	case p.Logger == nil:
		return fmt.Errorf("log required")
	case p.StaticFS == nil:
		return fmt.Errorf("static file system required")
	case p.TemplateFS == nil:
		return fmt.Errorf("template file system required")
	case p.TilesFS == nil:
		return fmt.Errorf("tiles file system required")
	}
	return nil
}

// parseTemplate parses the whole template file system to create a template.
func (p Parameters) parseTemplate() (*template.Template, error) {
	t, err := template.ParseFS(p.TemplateFS, "*")
	if err != nil {
		return nil, fmt.Errorf("parsing template file system: %v", err)
	}
	return t, nil
}

// validHTTPAddr determines if the HTTP address is valid.
// The HTTP address is valid if and only if the HTTP port is positive.
// If the HTTP address is valid, the HTTP server should be started to redirect to HTTPS and handle certificate creation.
func (cfg Config) validHTTPAddr() bool {
	return cfg.HTTPPort > 0
}

// hasTLS determines if the https server encrypts its connections.
func (cfg Config) hasTLS() bool {
	return len(cfg.TLSCertFile) != 0 || len(cfg.AutocertHosts) != 0
}

// Run the server asynchronously until it is stopped.  A server can only be run once.
// When the HTTP/HTTPS servers stop, errors are sent on the returned channel.
func (s *Server) Run(ctx context.Context) <-chan error {
	errC := make(chan error, 2)
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.ran {
		errC <- fmt.Errorf("server can only be run once")
		return errC
	}
	s.ran = true
	s.runHTTPServer(errC)
	s.runHTTPSServer(errC)
	return errC
}

// runHTTPServer runs the http server asynchronously, adding the return error to the channel when done.
// The server is only run if the HTTP address is valid.
func (s *Server) runHTTPServer(errC chan<- error) {
	if !s.validHTTPAddr() {
		return
	}
	s.log.Printf("starting http server at http://127.0.0.1%v", s.HTTPServer.Addr)
	go func() {
		errC <- s.HTTPServer.ListenAndServe()
	}()
}

// runHTTPSServer runs the https server in regards to the configuration, adding the return error to the channel when done.
func (s *Server) runHTTPSServer(errC chan<- error) {
	s.log.Printf("starting https server at https://127.0.0.1%v", s.HTTPSServer.Addr)
	go func() {
		switch {
		case s.certManager != nil:
			errC <- s.HTTPSServer.ListenAndServeTLS("", "") // certificates are provided by the TLSConfig
		case len(s.TLSCertFile) != 0:
			errC <- s.HTTPSServer.ListenAndServeTLS(s.TLSCertFile, s.TLSKeyFile)
		default:
			s.log.Printf("no tls certificate configured, serving unencrypted traffic on the https port")
			errC <- s.HTTPSServer.ListenAndServe()
		}
	}()
}

// Stop asks the server to shutdown and waits for the shutdown to complete.
// An error is returned if the context times out.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	httpsShutdownErr := s.HTTPSServer.Shutdown(ctx)
	httpShutdownErr := s.HTTPServer.Shutdown(ctx)
	switch {
	case httpsShutdownErr != nil:
		return fmt.Errorf("stopping https server: %w", httpsShutdownErr)
	case httpShutdownErr != nil:
		return fmt.Errorf("stopping http server: %w", httpShutdownErr)
	}
	return nil
}
