package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Mail       MailConfig       `toml:"mail"`
	Booking    BookingConfig    `toml:"booking"`
	Migrations MigrationsConfig `toml:"migrations"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type CalendarConfig struct {
	Enabled     bool   `toml:"enabled"`
	CalendarID  string `toml:"calendar_id"`
	ClientEmail string `toml:"client_email"`
	PrivateKey  string `toml:"private_key"`
	TimeZone    string `toml:"time_zone"`
	SchoolName  string `toml:"school_name"`
	Timeout     int    `toml:"timeout"` // секунды
}

type MailConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type BookingConfig struct {
	DisplayTimeZone   string `toml:"display_time_zone"`
	TxMaxRetries      int    `toml:"tx_max_retries"`
	SideEffectTimeout int    `toml:"side_effect_timeout"` // секунды
}

type MigrationsConfig struct {
	Dir string `toml:"dir"`
}

// Load читает config.toml, подгружает .env (если есть) и применяет переменные окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	overrideString(&c.Database.Host, "DB_HOST")
	overrideString(&c.Database.User, "DB_USER")
	overrideString(&c.Database.Password, "DB_PASSWORD")
	overrideString(&c.Database.DBName, "DB_NAME")
	overrideString(&c.Auth.JWTSecret, "JWT_SECRET")
	overrideString(&c.Calendar.ClientEmail, "GOOGLE_CLIENT_EMAIL")
	overrideString(&c.Calendar.PrivateKey, "GOOGLE_PRIVATE_KEY")
	overrideString(&c.Calendar.CalendarID, "GOOGLE_CALENDAR_ID")
	overrideString(&c.Mail.Username, "SMTP_USERNAME")
	overrideString(&c.Mail.Password, "SMTP_PASSWORD")

	if raw, ok := os.LookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT=%q is not a number", ErrInvalidConfig, raw)
		}
		c.Database.Port = port
	}
	if raw, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, raw)
		}
		c.Server.HTTPPort = port
	}

	return nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate проставляет значения по умолчанию и проверяет обязательные поля
func (c *Config) Validate() error {
	c.setDefaults()

	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database.host, database.user and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.rps and rate_limit.burst must be positive")
	}
	if c.Booking.TxMaxRetries <= 0 {
		problems = append(problems, "booking.tx_max_retries must be positive")
	}
	// синхронизация с календарем идет внутри запроса и должна успеть до write_timeout
	if c.Booking.SideEffectTimeout >= c.Server.WriteTimeout {
		problems = append(problems, fmt.Sprintf("booking.side_effect_timeout (%ds) must be less than server.write_timeout (%ds)",
			c.Booking.SideEffectTimeout, c.Server.WriteTimeout))
	}
	if _, err := time.LoadLocation(c.Booking.DisplayTimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("booking.display_time_zone %q: %v", c.Booking.DisplayTimeZone, err))
	}
	if c.Calendar.Enabled {
		if c.Calendar.CalendarID == "" || c.Calendar.ClientEmail == "" || c.Calendar.PrivateKey == "" {
			problems = append(problems, "calendar.calendar_id, calendar.client_email and calendar.private_key are required when calendar is enabled")
		}
		if _, err := time.LoadLocation(c.Calendar.TimeZone); err != nil {
			problems = append(problems, fmt.Sprintf("calendar.time_zone %q: %v", c.Calendar.TimeZone, err))
		}
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		problems = append(problems, "mail.host and mail.from are required when mail is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) setDefaults() {
	setIntDefault(&c.Server.HTTPPort, 8080)
	setIntDefault(&c.Server.ReadTimeout, 10)
	setIntDefault(&c.Server.WriteTimeout, 10)
	setIntDefault(&c.Server.IdleTimeout, 60)
	setIntDefault(&c.Server.ShutdownTimeout, 15)

	setIntDefault(&c.Database.Port, 5432)
	setStringDefault(&c.Database.SSLMode, "disable")
	setIntDefault(&c.Database.MaxOpenConns, 25)
	setIntDefault(&c.Database.MaxIdleConns, 5)
	setIntDefault(&c.Database.ConnMaxLifetime, 300)

	setStringDefault(&c.Logs.Level, "info")

	setStringDefault(&c.Metrics.Path, "/metrics")
	setStringDefault(&c.Metrics.ServiceName, "drivingschool-booking")

	setStringDefault(&c.Calendar.TimeZone, "Europe/Amsterdam")
	setIntDefault(&c.Calendar.Timeout, 10)

	setIntDefault(&c.Mail.Port, 587)

	setStringDefault(&c.Booking.DisplayTimeZone, "Europe/Amsterdam")
	setIntDefault(&c.Booking.TxMaxRetries, 3)
	setIntDefault(&c.Booking.SideEffectTimeout, 5)

	setStringDefault(&c.Migrations.Dir, "migrations")
}

func setIntDefault(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

func setStringDefault(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// DisplayLocation часовой пояс, в котором время показывается пользователям
func (c *Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.Booking.DisplayTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
