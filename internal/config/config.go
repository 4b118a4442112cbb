package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/magiconair/properties"
)

const defaultPropertiesPath = "app.properties"

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Entries   EntriesConfig
	Search    SearchConfig
	Notes     NotesConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

// StorageConfig holds absolute paths of every file and folder the server owns.
type StorageConfig struct {
	EntriesFile       string
	TodoFile          string
	MasterlistFile    string
	NotesDir          string
	SearchRoot        string
	FrequentItemsFile string
	TemplatesDir      string
	DiaryDir          string
}

type EntriesConfig struct {
	Backend        string
	LazyMigration  bool
	DefaultAppName string
	DefaultUser    string
}

type SearchConfig struct {
	Extensions   []string
	MaxFileBytes int64
}

type NotesConfig struct {
	RecentDays int
}

// DatabaseConfig is only consulted when Entries.Backend is "couchdb".
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Enabled           bool
	// TrustProxy keys clients on X-Forwarded-For; only set it behind a proxy
	// that overwrites the header.
	TrustProxy bool
}

type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// propertyMap is the parsed app.properties file.
type propertyMap map[string]string

// Load reads the optional .env file and the properties file at path. An empty
// path falls back to APP_PROPERTIES and then to app.properties in the working
// directory. Relative storage paths are resolved against the directory that
// holds the properties file.
func Load(path string) (*Config, error) {
	godotenv.Load()

	if path == "" {
		path = getEnv("APP_PROPERTIES", defaultPropertiesPath)
	}

	props, err := readProperties(path)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid properties path %q: %w", path, err)
	}
	root := filepath.Dir(absPath)

	maxBytes, err := strconv.ParseInt(props.get("search.max_file_bytes", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid search.max_file_bytes: %w", err)
	}

	recentDays, err := strconv.Atoi(props.get("notes.recent_days", "30"))
	if err != nil || recentDays <= 0 {
		return nil, fmt.Errorf("invalid notes.recent_days: %q", props.get("notes.recent_days", ""))
	}

	backend := strings.ToLower(props.get("entries.backend", "file"))
	if backend != "file" && backend != "couchdb" {
		return nil, fmt.Errorf("invalid entries.backend: %q", backend)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", props.get("BACKEND_PORT", "8000")),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Storage: StorageConfig{
			EntriesFile:       resolve(root, props.get("data.file.path", "backend/data.json")),
			TodoFile:          resolve(root, props.get("todo.storage.path", "backend/todo.json")),
			MasterlistFile:    resolve(root, props.get("todo.masterlist.path", "backend/masterlist.txt")),
			NotesDir:          resolve(root, props.get("notes.storage.path", "backend/notes")),
			SearchRoot:        resolve(root, props.get("search.root.path", "backend")),
			FrequentItemsFile: resolve(root, props.get("frequent.items.path", "backend/frequent_items.txt")),
			TemplatesDir:      resolve(root, props.get("templates.path", "backend/templates")),
			DiaryDir:          resolve(root, props.get("diary.storage.path", "backend/diary")),
		},
		Entries: EntriesConfig{
			Backend:        backend,
			LazyMigration:  props.getBool("entries.lazy_migration", true),
			DefaultAppName: props.get("entries.default.app_name", "default"),
			DefaultUser:    props.get("entries.default.user", "admin"),
		},
		Search: SearchConfig{
			Extensions:   splitList(props.get("search.extensions", "json,txt,md,py,js,css,html")),
			MaxFileBytes: maxBytes,
		},
		Notes: NotesConfig{
			RecentDays: recentDays,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5984"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "devdesk"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 300),
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			TrustProxy:        getEnvAsBool("RATE_LIMIT_TRUST_PROXY", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}, nil
}

// readProperties parses flat key=value lines, splitting at the first "=".
// Values are taken literally: backslashes and ${...} references are not
// interpreted, and # only starts a comment at the beginning of a line. Lines
// without "=" are ignored.
func readProperties(path string) (propertyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return propertyMap{}, nil
		}
		return nil, fmt.Errorf("failed to read properties %s: %w", path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		lines = append(lines, keyEscaper.Replace(strings.TrimSpace(key))+"="+valueEscaper.Replace(strings.TrimSpace(value)))
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	parsed, err := loader.LoadBytes([]byte(strings.Join(lines, "\n")))
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties %s: %w", path, err)
	}
	return propertyMap(parsed.Map()), nil
}

var (
	keyEscaper   = strings.NewReplacer(`\`, `\\`, " ", `\ `, "\t", `\t`, ":", `\:`, "!", `\!`)
	valueEscaper = strings.NewReplacer(`\`, `\\`)
)

func (p propertyMap) get(key, defaultValue string) string {
	if value := strings.TrimSpace(p[key]); value != "" {
		return value
	}
	return defaultValue
}

func (p propertyMap) getBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(p.get(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(item), "."))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
