package config

import "time"

// Server configures the HTTP listener.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Jwt configures token signing for authenticated sessions.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Storage selects and configures the registry's persistence backend.
type Storage struct {
	// Driver is "csv" or "postgres".
	Driver  string `envconfig:"DRIVER" default:"csv"`
	CsvPath string `envconfig:"CSV_PATH" default:"bank.csv"`
	Url     string `envconfig:"URL"`
}

// Log configures the process logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

// AppConfig is the full configuration surface of the ledger process.
type AppConfig struct {
	Server  Server  `envconfig:"SERVER"`
	Jwt     Jwt     `envconfig:"JWT"`
	Storage Storage `envconfig:"STORAGE"`
	Log     Log     `envconfig:"LOG"`
}
