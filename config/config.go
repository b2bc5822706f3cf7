package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "termsuji-spectate/config.json"
	logFile = "termsuji-spectate/spectate.log"
)

// Environment variables read by ApplyEnv.
const (
	EnvURL      = "SPECTATE_URL"
	EnvInterval = "SPECTATE_INTERVAL"
	EnvArchive  = "SPECTATE_ARCHIVE"
	EnvLogLevel = "SPECTATE_LOG_LEVEL"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors are hex colours (#rrggbb) for the board.
type ConfigColors struct {
	Board       string `json:"board"`
	Line        string `json:"line"`
	Coord       string `json:"coord"`
	BlackStone  string `json:"black"`
	WhiteStone  string `json:"white"`
	BlackNumber string `json:"black_number"`
	WhiteNumber string `json:"white_number"`
	LastMove    string `json:"last_move"`
}

type Theme struct {
	ShowMoveNumbers bool         `json:"show_move_numbers"`
	Colors          ConfigColors `json:"colors"`
}

// ServerConfig describes where and how often to poll.
type ServerConfig struct {
	URL           string `json:"url"`
	IntervalMS    int    `json:"interval_ms"`
	FailThreshold int    `json:"fail_threshold"`
}

// Interval returns the polling interval as a duration.
func (s ServerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

type Config struct {
	Theme      Theme        `json:"theme"`
	Server     ServerConfig `json:"server"`
	ArchiveDir string       `json:"archive_dir"`
	LogLevel   string       `json:"log_level"`
	MaxLog     int          `json:"max_log"`
}

// InitConfig loads the config file from the XDG config dirs over the
// defaults, then applies .env and environment overrides.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	// A missing .env is normal.
	_ = godotenv.Load()
	config.ApplyEnv(os.Getenv)
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ApplyEnv overrides fields from SPECTATE_* variables. Unparseable numbers
// are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvURL); v != "" {
		c.Server.URL = v
	}
	if v := getenv(EnvInterval); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Server.IntervalMS = ms
		}
	}
	if v := getenv(EnvArchive); v != "" {
		c.ArchiveDir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &InvalidConfig{fmt.Sprintf("server url %q must be an absolute http(s) URL", c.Server.URL)}
	}
	if c.Server.IntervalMS <= 0 {
		return &InvalidConfig{"poll interval must be positive"}
	}
	if c.Server.FailThreshold < 0 {
		return &InvalidConfig{"fail threshold must not be negative"}
	}
	if c.MaxLog <= 0 {
		return &InvalidConfig{"max_log must be positive"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	for name, hex := range c.Theme.Colors.named() {
		if !validHex(hex) {
			return &InvalidConfig{fmt.Sprintf("colour %s %q is not #rrggbb", name, hex)}
		}
	}
	return nil
}

func (c ConfigColors) named() map[string]string {
	return map[string]string{
		"board":        c.Board,
		"line":         c.Line,
		"coord":        c.Coord,
		"black":        c.BlackStone,
		"white":        c.WhiteStone,
		"black_number": c.BlackNumber,
		"white_number": c.WhiteNumber,
		"last_move":    c.LastMove,
	}
}

func validHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// LogFilePath returns where the log file goes, creating its directory.
func LogFilePath() (string, error) {
	return xdg.StateFile(logFile)
}

// Save writes c to the XDG config file that InitConfig reads and returns
// its path. Invalid configs are refused.
func (c *Config) Save() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %s", filePath, err)}
	}
	return nil
}
