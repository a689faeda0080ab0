package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/keyring"
	"github.com/julianstephens/hourlog/internal/storage/postgres"
	"github.com/julianstephens/hourlog/internal/storage/sqlite"
	"github.com/julianstephens/hourlog/internal/utils"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// Kind names the backend a store location selects.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindJSON     Kind = "json"
	KindPostgres Kind = "postgres"
)

// KindOf picks the backend for a location: postgres URLs, *.json files, or SQLite.
func KindOf(location string) Kind {
	switch {
	case postgres.IsConnString(location):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// Source records where a store location came from.
type Source int

const (
	SourceFlag    Source = iota // --store
	SourceSecret                // HOURLOG_DB_CONNECTION or the OS keyring
	SourceConfig                // store in the config file
	SourceDefault               // built-in default path
)

// Location is a store location plus its origin.
type Location struct {
	Value  string
	Source Source
}

// AllowsPassword reports whether a connection string from this origin may embed a
// password. Only the environment and the keyring are meant to hold secrets.
func (l Location) AllowsPassword() bool {
	return l.Source == SourceSecret
}

// Open builds the provider for a location given on the command line, without
// initializing or loading it. PostgreSQL connection strings that embed a password
// are rejected.
func Open(location string) (Provider, error) {
	return OpenLocation(Location{Value: location, Source: SourceFlag})
}

// OpenLocation is Open for a resolved location. Embedded passwords are accepted only
// from secret sources.
func OpenLocation(loc Location) (Provider, error) {
	location := loc.Value
	if KindOf(location) == KindPostgres {
		if _, err := postgres.ValidateConnString(location); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			if !loc.AllowsPassword() {
				return nil, fmt.Errorf("%w: store it with '%s keyring set' or the environment instead", err, constants.AppName)
			}
		}
		return postgres.New(location), nil
	}

	path, err := utils.ExpandPath(location)
	if err != nil {
		return nil, err
	}
	if KindOf(path) == KindJSON {
		return NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ResolveLocation chooses the store location. An explicit flag wins, then a
// connection string from the environment or keyring, then the config file value,
// then fallback.
func ResolveLocation(flagValue, configValue, fallback string) Location {
	if flagValue != "" {
		return Location{Value: flagValue, Source: SourceFlag}
	}
	if connStr, ok := keyring.ResolveConnectionString(); ok {
		return Location{Value: connStr, Source: SourceSecret}
	}
	if configValue != "" {
		return Location{Value: configValue, Source: SourceConfig}
	}
	return Location{Value: fallback, Source: SourceDefault}
}
