package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jacobpatterson1549/selene-tiles/log"
	"github.com/jacobpatterson1549/selene-tiles/server"
)

// embedParameters are the files embedded into the server.
type embedParameters struct {
	Version    string
	StaticFS   fs.FS
	TemplateFS fs.FS
}

// newEmbedParameters reads the version and unembeds the file systems.
func newEmbedParameters(version string, staticFS, templateFS fs.FS) (*embedParameters, error) {
	v, err := versionWord(version)
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	staticFS, err = unembedFS(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("unembedding static file system: %w", err)
	}
	templateFS, err = unembedFS(templateFS, "template")
	if err != nil {
		return nil, fmt.Errorf("unembedding template file system: %w", err)
	}
	e := embedParameters{
		Version:    v,
		StaticFS:   staticFS,
		TemplateFS: templateFS,
	}
	return &e, nil
}

// versionWord reads the first word of the version file to use as the version.
func versionWord(version string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(version))
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() {
		return "", fmt.Errorf("no words in version file")
	}
	return scanner.Text(), nil
}

// serverConfig creates the server configuration.
func (m mainFlags) serverConfig(version string) server.Config {
	c := server.Challenge{
		Token: m.challengeToken,
		Key:   m.challengeKey,
	}
	cfg := server.Config{
		HTTPPort:      m.httpPort,
		HTTPSPort:     m.httpsPort,
		StopDur:       defaultStopDur,
		CacheSec:      m.cacheSec,
		Version:       version,
		TLSCertFile:   m.tlsCertFile,
		TLSKeyFile:    m.tlsKeyFile,
		AutocertHosts: m.hosts(),
		AutocertDir:   m.autocertDir,
		Challenge:     c,
		NoTLSRedirect: m.noTLSRedirect,
	}
	return cfg
}

// createServer creates the server from the flags and embedded files.
// Tile images are read from the tiles folder.
func (m mainFlags) createServer(log log.Logger, e embedParameters) (*server.Server, error) {
	if info, err := os.Stat(m.tilesDir); err != nil || !info.IsDir() {
		log.Printf("tiles folder %q is not available, tile images will not be found", m.tilesDir)
	}
	p := server.Parameters{
		Logger:     log,
		StaticFS:   e.StaticFS,
		TemplateFS: e.TemplateFS,
		TilesFS:    os.DirFS(m.tilesDir),
	}
	cfg := m.serverConfig(e.Version)
	return cfg.NewServer(p)
}
