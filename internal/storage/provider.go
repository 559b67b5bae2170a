package storage

import "strings"

// NewProvider picks a cache backend from the config value: a postgres://
// connection string selects PostgreSQL, a .json path selects the flat-file
// store, anything else is treated as a SQLite database path.
func NewProvider(config string) (Provider, error) {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if HasEmbeddedCredentials(config) {
			return nil, ErrEmbeddedCredentials
		}
		return NewPostgresStore(config), nil
	}
	if strings.HasSuffix(config, ".json") {
		return NewJSONStore(config), nil
	}
	return NewSQLiteStore(config), nil
}
