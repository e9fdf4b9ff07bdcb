package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Driver selects which relational backend the entity store runs on.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds everything the process needs at startup. Values come from the
// environment (optionally loaded from configs/.env by main) with the same
// defaults the desktop deployment ships with.
type Config struct {
	ServerPort string
	DBDriver   string

	// SQLite (embedded store)
	SQLitePath string

	// Postgres (hosted store)
	PostgresDSN string

	Firebase FirebaseConfig
}

// FirebaseConfig locates the mirror-store credentials. Either a service
// account file or the env triple is enough; when neither is present the
// mirror sync endpoints report the missing fields instead of failing at boot.
type FirebaseConfig struct {
	ServiceAccountFile string
	ProjectID          string
	ClientEmail        string
	PrivateKey         string
}

// Configured reports whether any credential source is available.
func (f FirebaseConfig) Configured() bool {
	if f.ServiceAccountFile != "" {
		if _, err := os.Stat(f.ServiceAccountFile); err == nil {
			return true
		}
	}
	return f.ProjectID != "" && f.ClientEmail != "" && f.PrivateKey != ""
}

// MissingFields lists the env vars still needed to reach the mirror store.
func (f FirebaseConfig) MissingFields() []string {
	var missing []string
	if f.ProjectID == "" {
		missing = append(missing, "FIREBASE_PROJECT_ID")
	}
	if f.ClientEmail == "" {
		missing = append(missing, "FIREBASE_CLIENT_EMAIL")
	}
	if f.PrivateKey == "" {
		missing = append(missing, "FIREBASE_PRIVATE_KEY")
	}
	return missing
}

// appConfigFile is the small JSON file the desktop installer drops next to
// the executable to point at the database directory.
type appConfigFile struct {
	DBPath string `json:"dbPath"`
}

const dbFileName = "gymbeauty.db"

// Load assembles the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		ServerPort:  getEnv("PORT", "5000"),
		DBDriver:    getEnv("DB_DRIVER", DriverSQLite),
		PostgresDSN: postgresDSN(),
		Firebase: FirebaseConfig{
			ServiceAccountFile: getEnv("FIREBASE_SERVICE_ACCOUNT_FILE", filepath.Join("config", "firebase-service-account.json")),
			ProjectID:          os.Getenv("FIREBASE_PROJECT_ID"),
			ClientEmail:        os.Getenv("FIREBASE_CLIENT_EMAIL"),
			PrivateKey:         os.Getenv("FIREBASE_PRIVATE_KEY"),
		},
	}
	cfg.SQLitePath = resolveSQLitePath()
	return cfg
}

// resolveSQLitePath mirrors the lookup order the packaged app uses:
// APP_DB_PATH, then APP_DB_DIR, then a JSON config named by APP_CONFIG_PATH,
// then app-config.json next to the executable or in the working directory,
// and finally a development default under ./db.
func resolveSQLitePath() string {
	if p := os.Getenv("APP_DB_PATH"); p != "" {
		return p
	}
	if dir := os.Getenv("APP_DB_DIR"); dir != "" {
		return filepath.Join(dir, dbFileName)
	}
	if cfgPath := os.Getenv("APP_CONFIG_PATH"); cfgPath != "" {
		if p := dbPathFromConfigFile(cfgPath); p != "" {
			return p
		}
	}
	for _, cfgPath := range configFileCandidates() {
		if p := dbPathFromConfigFile(cfgPath); p != "" {
			return p
		}
	}
	return filepath.Join("db", dbFileName)
}

func configFileCandidates() []string {
	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "app-config.json"))
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, "app-config.json"))
	}
	return candidates
}

func dbPathFromConfigFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var fileCfg appConfigFile
	if err := json.Unmarshal(data, &fileCfg); err != nil || fileCfg.DBPath == "" {
		return ""
	}
	return filepath.Join(fileCfg.DBPath, dbFileName)
}

func postgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "gymbeauty")
	sslMode := getEnv("DB_SSLMODE", "disable")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslMode)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
