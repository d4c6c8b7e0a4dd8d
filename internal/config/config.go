package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	ServerPort string

	ResendAPIKey string
	EmailFrom    string
	GeminiAPIKey string

	QueueWorkers          int
	QueueSize             int
	TasksPerUserPerMinute int
	TaskMaxAttempts       int

	BudgetCheckInterval time.Duration
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		ServerPort: "9446",

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    "Finexa <onboarding@resend.dev>",
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		QueueWorkers:          5,
		QueueSize:             1000,
		TasksPerUserPerMinute: 10,
		TaskMaxAttempts:       3,

		BudgetCheckInterval: 6 * time.Hour,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if port := os.Getenv("SERVER_PORT"); len(port) != 0 {
		env.ServerPort = port
	}

	if from := os.Getenv("EMAIL_FROM"); len(from) != 0 {
		env.EmailFrom = from
	}

	env.QueueWorkers = getEnvInt("QUEUE_WORKERS", env.QueueWorkers)
	env.QueueSize = getEnvInt("QUEUE_SIZE", env.QueueSize)
	env.TasksPerUserPerMinute = getEnvInt("TASKS_PER_USER_PER_MINUTE", env.TasksPerUserPerMinute)
	env.TaskMaxAttempts = getEnvInt("TASK_MAX_ATTEMPTS", env.TaskMaxAttempts)
	env.BudgetCheckInterval = getEnvDuration("BUDGET_CHECK_INTERVAL", env.BudgetCheckInterval)

	return &env, nil
}

// ConnectionString builds the postgres connection URL used by both the server
// and the migration runner.
func (c *Config) ConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
