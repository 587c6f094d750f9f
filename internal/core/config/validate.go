package config

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, required),
		criterio.Run("server.addr", c.Server.Addr, listenAddr),
		criterio.Run("server.read_timeout", c.Server.ReadTimeout.Seconds(), positive),
		criterio.Run("server.write_timeout", c.Server.WriteTimeout.Seconds(), positive),
		criterio.Run("server.shutdown_timeout", c.Server.ShutdownTimeout.Seconds(), positive),
		c.validateCORS(),
		c.validateDatabase(),
	)
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility. The configPath argument specifies the config file
// location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for i, origin := range c.Server.CORS.AllowedOrigins {
		if origin == "*" || origin == "**" {
			warnings = append(warnings, ValidationWarning{
				Category: "CORS",
				Item:     fmt.Sprintf("allowed_origins[%d]", i),
				Message:  "pattern allows every origin",
			})
		}
	}

	if c.Database.MaxOpenConns == 1 {
		warnings = append(warnings, ValidationWarning{
			Category: "Database",
			Item:     "max_open_conns",
			Message:  "a single connection serializes every request",
		})
	}

	return warnings
}

func (c *Config) validateCORS() error {
	var errs criterio.FieldErrorsBuilder
	for i, origin := range c.Server.CORS.AllowedOrigins {
		if origin == "" {
			errs = errs.Append(fmt.Sprintf("server.cors.allowed_origins[%d]", i), errors.New("cannot be empty"))
			continue
		}
		if !doublestar.ValidatePattern(origin) {
			errs = errs.Append(fmt.Sprintf("server.cors.allowed_origins[%d]", i), fmt.Errorf("invalid pattern %q", origin))
		}
	}
	return errs.ToError()
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", errors.New("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", errors.New("cannot be negative"))
	} else if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot exceed max_open_conns (%d)", c.Database.MaxOpenConns))
	}
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", errors.New("cannot be negative"))
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func required(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func positive(v float64) error {
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

// listenAddr validates a host:port pair accepted by net.Listen.
func listenAddr(addr string) error {
	if addr == "" {
		return errors.New("cannot be empty")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}
