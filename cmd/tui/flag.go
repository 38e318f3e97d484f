package main

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

const (
	environmentVariableConfigFile       = "CONFIG_FILE"
	environmentVariableStorage          = "STORAGE"
	environmentVariableStorageFile      = "STORAGE_FILE"
	environmentVariableDatabaseURL      = "DATABASE_URL"
	environmentVariableFirestoreProject = "FIRESTORE_PROJECT_ID"
	environmentVariableQueryPeriod      = "QUERY_PERIOD"
	environmentVariableLogFile          = "LOG_FILE"
)

const (
	defaultConfigFile  = "~/.config/selene-tiles/config.toml"
	defaultStorage     = storageFile
	defaultQueryPeriod = 5 * time.Second
)

// mainFlags are the configuration options which can be easly configured at run startup for different environments.
type mainFlags struct {
	configFile       string
	storage          string
	storageFile      string
	databaseURL      string
	firestoreProject string
	queryPeriod      time.Duration
	logFile          string
}

// usage prints how to run the tile tracker to the flagset's output.
func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariableConfigFile,
		environmentVariableStorage,
		environmentVariableStorageFile,
		environmentVariableDatabaseURL,
		environmentVariableFirestoreProject,
		environmentVariableQueryPeriod,
		environmentVariableLogFile,
	}
	fmt.Fprintf(fs.Output(), "Tracks which tiles are used in the terminal\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(envVars, ","))
	fmt.Fprintf(fs.Output(), "Reads defaults from the TOML config file when it exists\n")
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
// Defaults are read from the environment, then the config file.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool), fc fileConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	fs.Usage = func() {
		usage(fs) // [lazy evaluation]
	}
	envValue := func(key, defaultValue string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return defaultValue
	}
	envValueDuration := func(key string, defaultValue time.Duration) time.Duration {
		v1 := envValue(key, "")
		v2, err := time.ParseDuration(v1)
		if err != nil {
			return defaultValue
		}
		return v2
	}
	fs.StringVar(&m.configFile, "config", envValue(environmentVariableConfigFile, defaultConfigFile), "The TOML file to read default options from.")
	fs.StringVar(&m.storage, "storage", envValue(environmentVariableStorage, fc.storage()), "Where tile state is stored.  One of: "+strings.Join(storageTypes, ", ")+".")
	fs.StringVar(&m.storageFile, "storage-file", envValue(environmentVariableStorageFile, fc.storageFile()), "The TOML file tile state is stored in when the storage is file.")
	fs.StringVar(&m.databaseURL, "data-source", envValue(environmentVariableDatabaseURL, fc.DataSource), "The data source to the database (connection URI) when the storage is postgres, sqlite3, or mongo.")
	fs.StringVar(&m.firestoreProject, "firestore-project", envValue(environmentVariableFirestoreProject, fc.FirestoreProject), "The google cloud project id when the storage is firestore.")
	fs.DurationVar(&m.queryPeriod, "query-period", envValueDuration(environmentVariableQueryPeriod, fc.queryPeriod()), "The amount of time each storage request can take.")
	fs.StringVar(&m.logFile, "log-file", envValue(environmentVariableLogFile, fc.LogFile), "The file to write diagnostic messages to.  Messages are discarded if empty.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Fields are populated from command line arguments.
// If fields are not specified on the command line, environment variable values are used before config file values and other defaults.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool), readFileFunc func(name string) ([]byte, error)) (*mainFlags, error) {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	programArgs := osArgs[1:]
	configFile := configFileArg(programArgs)
	if len(configFile) == 0 {
		configFile = defaultConfigFile
		if v, ok := osLookupEnvFunc(environmentVariableConfigFile); ok {
			configFile = v
		}
	}
	fc, err := readFileConfig(configFile, readFileFunc)
	if err != nil {
		return nil, err
	}
	var m mainFlags
	fs := m.newFlagSet(osLookupEnvFunc, *fc)
	fs.Parse(programArgs)
	return &m, nil
}

// configFileArg finds the value of the config flag in the args.
// The config file must be read before the other flags are parsed because it contains their defaults.
func configFileArg(args []string) string {
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		switch {
		case arg == "--":
			return ""
		case name == "config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(name, "config="):
			return strings.TrimPrefix(name, "config=")
		}
	}
	return ""
}
