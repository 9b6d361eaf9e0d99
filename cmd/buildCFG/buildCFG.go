package buildCFG

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"urevents/internal/mailer"
)

type ServerConfig struct {
	Port          string
	SessionSecret string
	UploadDir     string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

type AdminConfig struct {
	Username string
	Password string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	out := ServerConfig{
		Port:          cfg.GetString("server.port"),
		SessionSecret: cfg.GetString("server.session_secret"),
		UploadDir:     cfg.GetString("server.upload_dir"),
	}
	if out.Port == "" {
		out.Port = "8080"
	}
	if out.UploadDir == "" {
		out.UploadDir = "static/uploads"
	}
	if out.SessionSecret == "" {
		log.Warn().Msg("server.session_secret is empty, sessions will not survive restarts safely")
		out.SessionSecret = "urevents-dev-secret"
	}
	return out
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("database.master")
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("database.master is not configured")
	}

	slaveDSNs := cfg.GetStringSlice("database.slaves")

	opts := &dbpg.Options{
		MaxOpenConns: cfg.GetInt("database.max_open_conns"),
		MaxIdleConns: cfg.GetInt("database.max_idle_conns"),
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 5
	}

	log.Info().Int("slaves", len(slaveDSNs)).Msg("database configuration built")
	return masterDSN, slaveDSNs, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	out := RabbitConfig{
		Url:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if out.Url == "" {
		return out, fmt.Errorf("rabbit.url is not configured")
	}
	if out.Exchange == "" {
		out.Exchange = "urevents.notifications"
	}
	if out.Queue == "" {
		out.Queue = "admin-notifications"
	}
	return out, nil
}

func BuildAdminConfig(cfg *config.Config) (AdminConfig, error) {
	out := AdminConfig{
		Username: cfg.GetString("admin.username"),
		Password: cfg.GetString("admin.password"),
	}
	if out.Username == "" {
		out.Username = "admin"
	}
	if out.Password == "" {
		return out, fmt.Errorf("admin.password is not configured")
	}
	return out, nil
}

func BuildMailConfig(cfg *config.Config) mailer.Config {
	return mailer.Config{
		Host:       cfg.GetString("smtp.host"),
		Port:       cfg.GetString("smtp.port"),
		From:       cfg.GetString("smtp.from"),
		Password:   cfg.GetString("smtp.password"),
		AdminEmail: cfg.GetString("smtp.admin_email"),
	}
}
