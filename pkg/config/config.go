// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import "time"

// Log configures the structured logger backend.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"` // charmbracelet/log levels; 0 = info
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"railbank"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

// Data locates the flat-file stores. Relative paths resolve against the
// working directory.
type Data struct {
	CredentialsFile  string `envconfig:"CREDENTIALS_FILE" default:"users.csv"`
	ReservationsFile string `envconfig:"RESERVATIONS_FILE" default:"reservations.csv"`
	// LedgerSnapshot enables JSON snapshot persistence of the account
	// ledger when non-empty. The ledger itself stays in-memory.
	LedgerSnapshot string `envconfig:"LEDGER_SNAPSHOT" default:""`
}

// Jwt configures token issuing for the HTTP surface.
type Jwt struct {
	Secret string        `envconfig:"SECRET" default:"railbank-dev-secret"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Auth selects how stored secrets are sealed and compared.
// Strategy is "plain" (exact string match, the historical behavior) or
// "bcrypt" (salted hash behind the same authenticate contract).
type Auth struct {
	Strategy string `envconfig:"STRATEGY" default:"plain"`
	Jwt      Jwt    `envconfig:"JWT"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr string `envconfig:"ADDR" default:":3000"`
}

// App is the root configuration.
type App struct {
	Env    string `envconfig:"ENV" default:"development"`
	Log    Log    `envconfig:"LOG"`
	Data   Data   `envconfig:"DATA"`
	Auth   Auth   `envconfig:"AUTH"`
	Server Server `envconfig:"SERVER"`
}
