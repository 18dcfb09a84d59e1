package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Crypto Journal Configuration

[database]
# Path to the sqlite database file. Empty uses the config directory.
path = ""

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Currency symbol for pnl and capital
currency = "$"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Rotate the log file after this many megabytes
max_size_mb = 10
# Keep this many rotated files
max_backups = 3
# Delete rotated files older than this many days
max_age_days = 30

[audit]
# LLM model used for AI audits
model = "gpt-4o"
# Maximum tokens for audit responses
max_tokens = 4096
`

const credentialsTemplate = `# Crypto Journal Credentials
# WARNING: Keep this file secure! Do not commit to version control.

[openai]
api_key = ""
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}
