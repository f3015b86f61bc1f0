package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	DirectoryFile string
	RacksFile     string
	OperatorGroup string
	UserHeader    string
	SecurePort    int
	TLSCert       string
	TLSKey        string
	ClientCA      string
	EnvFile       string
}

// ParseFlags reads flags, then the env file, then environment variables.
// Flags win over the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("hwops", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.SecurePort, "secure-port", -1, "Port where the front end requests client tickets")
	fs.StringVar(&cfg.TLSCert, "tls-cert", "", "Server certificate for the secure port")
	fs.StringVar(&cfg.TLSKey, "tls-key", "", "Server key for the secure port")
	fs.StringVar(&cfg.ClientCA, "client-ca", "", "CA bundle that signs client certificates")

	// Inventory sources
	fs.StringVar(&cfg.DirectoryFile, "directory", "", "Group directory TOML file")
	fs.StringVar(&cfg.RacksFile, "racks", "", "Rack definitions TOML file (optional)")

	// Authorization
	fs.StringVar(&cfg.OperatorGroup, "operators", "", "Group whose members may edit every device")
	fs.StringVar(&cfg.UserHeader, "user-header", "", "Trusted header carrying the authenticated user")

	fs.StringVar(&cfg.EnvFile, "env", ".env", "Environment file to load if present")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 8080)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.SecurePort < 0 {
		port, err := envInt("SECURE_PORT", 444)
		if err != nil {
			return Config{}, err
		}
		cfg.SecurePort = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:hwops.db"
	}

	if cfg.DirectoryFile == "" {
		cfg.DirectoryFile = os.Getenv("DIRECTORY_FILE")
	}
	if cfg.DirectoryFile == "" {
		return Config{}, errors.New("DIRECTORY_FILE required")
	}
	if cfg.RacksFile == "" {
		cfg.RacksFile = os.Getenv("RACKS_FILE")
	}

	if cfg.OperatorGroup == "" {
		cfg.OperatorGroup = os.Getenv("OPERATOR_GROUP")
	}
	if cfg.OperatorGroup == "" {
		return Config{}, errors.New("OPERATOR_GROUP required")
	}
	if cfg.UserHeader == "" {
		cfg.UserHeader = os.Getenv("USER_HEADER")
	}

	// Secure port: all three files or none
	if cfg.TLSCert == "" {
		cfg.TLSCert = os.Getenv("TLS_CERT")
	}
	if cfg.TLSKey == "" {
		cfg.TLSKey = os.Getenv("TLS_KEY")
	}
	if cfg.ClientCA == "" {
		cfg.ClientCA = os.Getenv("CLIENT_CA")
	}
	if (cfg.TLSCert != "" || cfg.TLSKey != "" || cfg.ClientCA != "") &&
		(cfg.TLSCert == "" || cfg.TLSKey == "" || cfg.ClientCA == "") {
		return Config{}, errors.New("TLS_CERT, TLS_KEY and CLIENT_CA must be set together")
	}
	if cfg.TLSCert != "" && cfg.SecurePort == 0 {
		return Config{}, errors.New("SECURE_PORT required to serve client certificates")
	}

	// Without either source nobody can log in
	if cfg.UserHeader == "" && !cfg.ServesClientCerts() {
		return Config{}, errors.New("USER_HEADER or TLS_CERT/TLS_KEY/CLIENT_CA required to authenticate users")
	}

	return cfg, nil
}

// ServesClientCerts reports whether the secure port is served here rather
// than by a front end.
func (c Config) ServesClientCerts() bool {
	return c.TLSCert != ""
}

func envInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return n, nil
}
