package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	// StoreDriver selects the collection backend: file|sqlite|postgres.
	StoreDriver string
	DataFile    string // for the file backend
	DBDSN       string // for the sql backends

	EnableLocalAuth bool
	AuthSecret      string
	EditorUser      string
	EditorPassHash  string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:            mode,
		HTTPAddr:        addr,
		StoreDriver:     envOr("STORE_DRIVER", "file"),
		DataFile:        envOr("DATA_FILE", "data/data.json"),
		DBDSN:           envOr("DB_DSN", ""),
		EnableLocalAuth: envBool("ENABLE_LOCAL_AUTH", true),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		EditorUser:      envOr("EDITOR_USER", "editor"),
		// Default hash matches the dev password "password".
		EditorPassHash:     envOr("EDITOR_PASS_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://qbank.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:3010"),
	}
}

// fileConfig mirrors the YAML overlay. Only set keys override the
// environment-derived defaults.
type fileConfig struct {
	Mode     string `yaml:"mode"`
	HTTPAddr string `yaml:"http_addr"`
	Store    struct {
		Driver   string `yaml:"driver"`
		DataFile string `yaml:"data_file"`
		DSN      string `yaml:"dsn"`
	} `yaml:"store"`
	Auth struct {
		Enabled        *bool  `yaml:"enabled"`
		Secret         string `yaml:"secret"`
		EditorUser     string `yaml:"editor_user"`
		EditorPassHash string `yaml:"editor_pass_hash"`
	} `yaml:"auth"`
}

// Load builds the config from the environment and, when path is
// non-empty, overlays the YAML file on top.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}
	if fc.Mode != "" {
		cfg.Mode = Mode(fc.Mode)
	}
	if fc.HTTPAddr != "" {
		cfg.HTTPAddr = fc.HTTPAddr
	}
	if fc.Store.Driver != "" {
		cfg.StoreDriver = fc.Store.Driver
	}
	if fc.Store.DataFile != "" {
		cfg.DataFile = fc.Store.DataFile
	}
	if fc.Store.DSN != "" {
		cfg.DBDSN = fc.Store.DSN
	}
	if fc.Auth.Enabled != nil {
		cfg.EnableLocalAuth = *fc.Auth.Enabled
	}
	if fc.Auth.Secret != "" {
		cfg.AuthSecret = fc.Auth.Secret
	}
	if fc.Auth.EditorUser != "" {
		cfg.EditorUser = fc.Auth.EditorUser
	}
	if fc.Auth.EditorPassHash != "" {
		cfg.EditorPassHash = fc.Auth.EditorPassHash
	}
	return cfg, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
