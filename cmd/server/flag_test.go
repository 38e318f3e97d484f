package main

import (
	"reflect"
	"testing"
)

func TestNewMainFlags(t *testing.T) {
	defaultFlags := mainFlags{
		httpsPort: defaultHTTPSPort,
		cacheSec:  defaultCacheSec,
		tilesDir:  defaultTilesDir,
	}
	newMainFlagsTests := []struct {
		name    string
		osArgs  []string
		envVars map[string]string
		want    mainFlags
	}{
		{
			name: "defaults",
			want: defaultFlags,
		},
		{
			name:   "not a flag",
			osArgs: []string{"", "https-port=8001"},
			want:   defaultFlags,
		},
		{
			name:   "https port flag",
			osArgs: []string{"", "-https-port=8001"},
			want: mainFlags{
				httpsPort: 8001,
				cacheSec:  defaultCacheSec,
				tilesDir:  defaultTilesDir,
			},
		},
		{
			name:   "https port flag with two dashes",
			osArgs: []string{"", "--https-port=8001"},
			want: mainFlags{
				httpsPort: 8001,
				cacheSec:  defaultCacheSec,
				tilesDir:  defaultTilesDir,
			},
		},
		{
			name:    "https port environment variable",
			envVars: map[string]string{"HTTPS_PORT": "8002"},
			want: mainFlags{
				httpsPort: 8002,
				cacheSec:  defaultCacheSec,
				tilesDir:  defaultTilesDir,
			},
		},
		{
			name:    "flag overrides environment variable",
			osArgs:  []string{"", "-https-port=8003"},
			envVars: map[string]string{"HTTPS_PORT": "8004"},
			want: mainFlags{
				httpsPort: 8003,
				cacheSec:  defaultCacheSec,
				tilesDir:  defaultTilesDir,
			},
		},
		{
			name:    "bad port environment variable",
			envVars: map[string]string{"HTTPS_PORT": "eighty"},
			want:    defaultFlags,
		},
		{
			name:    "port overrides http and https ports",
			osArgs:  []string{"", "-http-port=80", "-https-port=443"},
			envVars: map[string]string{"PORT": "8080"},
			want: mainFlags{
				httpPort:  -1,
				httpsPort: 8080,
				cacheSec:  defaultCacheSec,
				tilesDir:  defaultTilesDir,
			},
		},
		{
			name:    "no tls redirect is present",
			envVars: map[string]string{"NO_TLS_REDIRECT": ""},
			want: mainFlags{
				httpsPort:     defaultHTTPSPort,
				noTLSRedirect: true,
				cacheSec:      defaultCacheSec,
				tilesDir:      defaultTilesDir,
			},
		},
		{
			name: "all command line",
			osArgs: []string{
				"",
				"-http-port=1",
				"-https-port=2",
				"-acme-challenge-token=3",
				"-acme-challenge-key=4",
				"-tls-cert-file=5",
				"-tls-key-file=6",
				"-autocert-hosts=7",
				"-autocert-dir=8",
				"-no-tls-redirect",
				"-cache-sec=9",
				"-tiles-dir=10",
			},
			want: mainFlags{
				httpPort:       1,
				httpsPort:      2,
				challengeToken: "3",
				challengeKey:   "4",
				tlsCertFile:    "5",
				tlsKeyFile:     "6",
				autocertHosts:  "7",
				autocertDir:    "8",
				noTLSRedirect:  true,
				cacheSec:       9,
				tilesDir:       "10",
			},
		},
		{
			name: "all environment variables",
			envVars: map[string]string{
				"HTTP_PORT":            "1",
				"HTTPS_PORT":           "2",
				"ACME_CHALLENGE_TOKEN": "3",
				"ACME_CHALLENGE_KEY":   "4",
				"TLS_CERT_FILE":        "5",
				"TLS_KEY_FILE":         "6",
				"AUTOCERT_HOSTS":       "7",
				"AUTOCERT_DIR":         "8",
				"NO_TLS_REDIRECT":      "",
				"CACHE_SECONDS":        "9",
				"TILES_DIR":            "10",
			},
			want: mainFlags{
				httpPort:       1,
				httpsPort:      2,
				challengeToken: "3",
				challengeKey:   "4",
				tlsCertFile:    "5",
				tlsKeyFile:     "6",
				autocertHosts:  "7",
				autocertDir:    "8",
				noTLSRedirect:  true,
				cacheSec:       9,
				tilesDir:       "10",
			},
		},
	}
	for _, test := range newMainFlagsTests {
		osLookupEnvFunc := func(key string) (string, bool) {
			v, ok := test.envVars[key]
			return v, ok
		}
		got := newMainFlags(test.osArgs, osLookupEnvFunc)
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("%v: not equal:\nwanted: %+v\ngot:    %+v", test.name, test.want, got)
		}
	}
}

func TestHosts(t *testing.T) {
	hostsTests := []struct {
		autocertHosts string
		want          []string
	}{
		{},
		{
			autocertHosts: " , ",
		},
		{
			autocertHosts: "example.com",
			want:          []string{"example.com"},
		},
		{
			autocertHosts: "example.com, www.example.com,,",
			want:          []string{"example.com", "www.example.com"},
		},
	}
	for i, test := range hostsTests {
		m := mainFlags{
			autocertHosts: test.autocertHosts,
		}
		if want, got := test.want, m.hosts(); !reflect.DeepEqual(want, got) {
			t.Errorf("Test %v: wanted %q, got %q", i, want, got)
		}
	}
}
