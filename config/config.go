package config

import (
	"os"
	"time"

	"github.com/namsral/flag"
)

type Config struct {
	// DataPath holds serialized models, one <name>.ccm per language.
	DataPath string
	// ModelDBPath is an optional SQLite model store. It takes precedence
	// over DataPath when set.
	ModelDBPath string

	DBConnURI        string
	DBMigrationsPath string

	SecretKey    string
	ListenAddr   string
	SolveTimeout time.Duration

	LogLevel string
	Debug    bool
}

// Load loads the configs from the given arguments
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("classic-crypto", flag.ContinueOnError)

	fs.BoolVar(&c.Debug, "debug", false, "debug logging on")

	fs.StringVar(&c.DataPath, "data-path", os.Getenv("CC_DATA_PATH"), "directory holding trained model files")
	fs.StringVar(&c.ModelDBPath, "model-db-path", "", "sqlite database holding trained models")
	fs.StringVar(&c.DBConnURI, "db-conn-uri", "", "postgres URI for the solve journal; journal is off if empty")
	fs.StringVar(&c.DBMigrationsPath, "db-migrations-path", "file://db/migrations", "the migration path for the solve journal")
	fs.StringVar(&c.SecretKey, "secret-key", "", "JWT secret key; auth is off if empty")
	fs.StringVar(&c.ListenAddr, "listen-addr", ":8180", "address the solver server listens on")
	fs.DurationVar(&c.SolveTimeout, "solve-timeout", 30*time.Second, "how long a single solve may run")

	fs.StringVar(&c.LogLevel, "log-level", "info", "log level")
	err := fs.Parse(args)
	return err
}
