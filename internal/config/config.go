package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Invitations *struct {
		TTLHours          int `json:"ttl_hours"`
		SweepEveryMinutes int `json:"sweep_every_minutes"`
	} `json:"invitations"`
	// Optional SMTP settings for best-effort invitation and result emails.
	// When omitted, in-app notifications still work and email is skipped.
	SMTP *struct {
		Addr     string `json:"addr"`
		Host     string `json:"host"`
		From     string `json:"from"`
		Username string `json:"username"`
	} `json:"smtp"`
}

// LoadedConfig contains the server address to bind to, the database path and
// the invitation expiry tuning.
type LoadedConfig struct {
	ServerAddress string
	DatabasePath  string
	InvitationTTL time.Duration
	SweepInterval time.Duration

	SMTPAddr     string
	SMTPHost     string
	SMTPFrom     string
	SMTPUsername string
}

// LoadConfig reads the configuration file at path and applies defaults for
// anything omitted. An empty path returns the defaults outright.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := &LoadedConfig{
		ServerAddress: ":8080",
		DatabasePath:  "arena.db",
		InvitationTTL: 24 * time.Hour,
		SweepInterval: 15 * time.Minute,
	}
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.Invitations != nil {
		if rc.Invitations.TTLHours < 0 {
			return nil, fmt.Errorf("config file %s: invitations.ttl_hours must not be negative", path)
		}
		if rc.Invitations.TTLHours > 0 {
			cfg.InvitationTTL = time.Duration(rc.Invitations.TTLHours) * time.Hour
		}
		if rc.Invitations.SweepEveryMinutes < 0 {
			return nil, fmt.Errorf("config file %s: invitations.sweep_every_minutes must not be negative", path)
		}
		if rc.Invitations.SweepEveryMinutes > 0 {
			cfg.SweepInterval = time.Duration(rc.Invitations.SweepEveryMinutes) * time.Minute
		}
	}
	if rc.SMTP != nil {
		cfg.SMTPAddr = strings.TrimSpace(rc.SMTP.Addr)
		cfg.SMTPHost = strings.TrimSpace(rc.SMTP.Host)
		cfg.SMTPFrom = strings.TrimSpace(rc.SMTP.From)
		cfg.SMTPUsername = strings.TrimSpace(rc.SMTP.Username)
		if cfg.SMTPAddr != "" && cfg.SMTPFrom == "" {
			return nil, fmt.Errorf("config file %s: smtp.from is required when smtp.addr is set", path)
		}
	}

	return cfg, nil
}
