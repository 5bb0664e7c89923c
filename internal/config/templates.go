package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# TradeLight Configuration

[remote]
# MongoDB connection string. Leave empty to run fully offline.
uri = ""
# Database name
database = "tradelight"
# Connection timeout (e.g., "10s", "1m")
connect_timeout = "10s"

[cache]
# Local cache database path. Defaults to <config dir>/cache.db.
path = ""

[journal]
# Autosave quiet period in milliseconds
debounce_ms = 2000

[dashboard]
# Monthly logged-day goal
log_goal = 30

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "Jan 2, 2006"

[logging]
# Log level: trace, debug, info, warn, error
level = "info"
# Log file path. Leave empty to log to the config directory.
file = ""
# Rotation limits
max_size_mb = 10
max_backups = 3
max_age_days = 30
# Also log to the terminal
console = false

[user]
# Journal owner identity
id = ""
email = ""
display_name = ""
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}
