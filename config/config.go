package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values of DBDRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application's configuration values.
type Config struct {
	AppName  string `json:"appname"`
	AppEnv   string `json:"appenv"`
	AppPort  uint16 `json:"appport"`
	GinMode  string `json:"ginmode"`
	LogLevel string `json:"loglevel"`

	DBDriver  string `json:"dbdriver"`
	DBHost    string `json:"dbhost"`
	DBPort    uint16 `json:"dbport"`
	DBName    string `json:"dbname"`
	DBUSER    string `json:"dbuser"`
	DBPass    string `json:"dbpass"`
	DBSSLMode string `json:"dbsslmode"`

	DBMaxOpenConns    int           `json:"dbmaxopenconns"`
	DBMaxIdleConns    int           `json:"dbmaxidleconns"`
	DBConnMaxLifetime time.Duration `json:"dbconnmaxlifetime"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is not an error; the process environment is used as is.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded, using process environment: %v", err)
		}
		config = FromEnv()
	})
	return config
}

// FromEnv builds a Config from the current environment, applying defaults for
// unset keys.
func FromEnv() *Config {
	appPort, err := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
	if err != nil || appPort == 0 {
		appPort = 8080
	}
	driver := getEnv("DBDRIVER", DriverMySQL)
	dbPort, err := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)
	if err != nil || dbPort == 0 {
		dbPort = 3306
		if driver == DriverPostgres {
			dbPort = 5432
		}
	}

	return &Config{
		AppName:  getEnv("APPNAME", "clinic-records"),
		AppEnv:   getEnv("APPENV", "development"),
		AppPort:  uint16(appPort),
		GinMode:  getEnv("GINMODE", "debug"),
		LogLevel: getEnv("LOGLEVEL", "info"),

		DBDriver:  driver,
		DBHost:    getEnv("DBHOST", "localhost"),
		DBPort:    uint16(dbPort),
		DBName:    os.Getenv("DBNAME"),
		DBUSER:    os.Getenv("DBUSER"),
		DBPass:    os.Getenv("DBPASS"),
		DBSSLMode: getEnv("DBSSLMODE", "disable"),

		DBMaxOpenConns:    getEnvInt("DBMAXOPENCONNS", 25),
		DBMaxIdleConns:    getEnvInt("DBMAXIDLECONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DBCONNMAXLIFETIME", 5*time.Minute),
	}
}

// ConnectDatabase opens the database described by LoadConfig.
func ConnectDatabase() (*gorm.DB, error) {
	return Open(LoadConfig())
}

// Open connects to the database selected by cfg.DBDriver. With APPENV=test an
// isolated in-memory SQLite database is used regardless of the driver.
func Open(cfg *Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// DSN returns the data source name for cfg's driver.
func (cfg *Config) DSN() string {
	switch cfg.DBDriver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName, cfg.DBSSLMode)
	case DriverSQLite:
		return fmt.Sprintf("file:%s?_foreign_keys=1", cfg.DBName)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
}

func dialectorFor(cfg *Config) (gorm.Dialector, error) {
	if cfg.AppEnv == "test" {
		dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", cfg.AppName, time.Now().UnixNano())
		return sqlite.Open(dsn), nil
	}
	switch cfg.DBDriver {
	case DriverMySQL, "":
		return mysql.Open(cfg.DSN()), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
