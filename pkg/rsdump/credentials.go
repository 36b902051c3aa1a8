package rsdump

import (
	"fmt"
	"os"
	"strconv"
)

// Credentials holds the five fields required to connect to a warehouse
// database. All fields are required; validation happens at construction
// time (CredentialsFromEnv, CredentialsFromMap), not at connection time.
type Credentials struct {
	Username string
	Password string
	Host     string
	Port     int
	DBName   string
}

// Environment variable suffixes for prefix-based credential resolution.
// A prefix of "REDSHIFT" resolves REDSHIFT_USERNAME, REDSHIFT_PASSWORD,
// REDSHIFT_HOST, REDSHIFT_PORT and REDSHIFT_DB_NAME.
const (
	EnvSuffixUsername = "USERNAME"
	EnvSuffixPassword = "PASSWORD"
	EnvSuffixHost     = "HOST"
	EnvSuffixPort     = "PORT"
	EnvSuffixDBName   = "DB_NAME"
)

// Map keys accepted by CredentialsFromMap.
const (
	MapKeyUsername = "username"
	MapKeyPassword = "password"
	MapKeyHost     = "host"
	MapKeyPort     = "port"
	MapKeyDBName   = "db_name"
)

// URL builds the database connection URL for the credentials.
//
// The result always has the form:
//
//	postgresql://{username}:{password}@{host}:{port}/{db_name}
//
// No escaping is performed; field values containing URL-reserved
// characters will not be represented correctly.
func (c Credentials) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName)
}

// CredentialsFromEnv constructs Credentials from environment variables
// sharing a common prefix.
//
// For prefix "MY_PREFIX" the following variables are read:
//   - MY_PREFIX_USERNAME
//   - MY_PREFIX_PASSWORD
//   - MY_PREFIX_HOST
//   - MY_PREFIX_PORT
//   - MY_PREFIX_DB_NAME
//
// All five are required. A missing or empty variable returns an error
// wrapping ErrMissingCredential that names the offending variable. There
// are no defaults and no partial credentials.
func CredentialsFromEnv(prefix string) (Credentials, error) {
	get := func(suffix string) (string, error) {
		name := prefix + "_" + suffix
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("environment variable %s is not set: %w", name, ErrMissingCredential)
		}
		return value, nil
	}

	username, err := get(EnvSuffixUsername)
	if err != nil {
		return Credentials{}, err
	}
	password, err := get(EnvSuffixPassword)
	if err != nil {
		return Credentials{}, err
	}
	host, err := get(EnvSuffixHost)
	if err != nil {
		return Credentials{}, err
	}
	portStr, err := get(EnvSuffixPort)
	if err != nil {
		return Credentials{}, err
	}
	dbName, err := get(EnvSuffixDBName)
	if err != nil {
		return Credentials{}, err
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Credentials{}, fmt.Errorf("environment variable %s_%s must be an integer, got %q: %w",
			prefix, EnvSuffixPort, portStr, ErrInvalidConfig)
	}

	return Credentials{
		Username: username,
		Password: password,
		Host:     host,
		Port:     port,
		DBName:   dbName,
	}, nil
}

// CredentialsFromMap constructs Credentials from an unordered mapping
// keyed by "username", "password", "host", "port" and "db_name".
//
// The failure contract matches CredentialsFromEnv: a missing or empty
// key returns an error wrapping ErrMissingCredential, and a non-integer
// port returns an error wrapping ErrInvalidConfig. Given equivalent
// field values, the resulting URL is identical to the one produced by
// the environment path.
func CredentialsFromMap(m map[string]string) (Credentials, error) {
	get := func(key string) (string, error) {
		value := m[key]
		if value == "" {
			return "", fmt.Errorf("credentials map key %q is missing or empty: %w", key, ErrMissingCredential)
		}
		return value, nil
	}

	username, err := get(MapKeyUsername)
	if err != nil {
		return Credentials{}, err
	}
	password, err := get(MapKeyPassword)
	if err != nil {
		return Credentials{}, err
	}
	host, err := get(MapKeyHost)
	if err != nil {
		return Credentials{}, err
	}
	portStr, err := get(MapKeyPort)
	if err != nil {
		return Credentials{}, err
	}
	dbName, err := get(MapKeyDBName)
	if err != nil {
		return Credentials{}, err
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials map key %q must be an integer, got %q: %w",
			MapKeyPort, portStr, ErrInvalidConfig)
	}

	return Credentials{
		Username: username,
		Password: password,
		Host:     host,
		Port:     port,
		DBName:   dbName,
	}, nil
}
