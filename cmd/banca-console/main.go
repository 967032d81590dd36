// ABOUTME: Entry point for banca-console, the web back-office for the banking API
// ABOUTME: Subcommands: serve the console, write a config file, check health

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/honeycombio/otel-config-go/otelconfig"

	"github.com/pvchallenge/banca-console/internal/config"
	"github.com/pvchallenge/banca-console/internal/server"
)

// Version is set at build time.
var version = "dev"

const banner = `
  _
 | |__   __ _ _ __   ___ __ _
 | '_ \ / _' | '_ \ / __/ _' |
 | |_) | (_| | | | | (_| (_| |
 |_.__/ \__,_|_| |_|\___\__,_|
`

// getConfigPath returns the path to the console config file.
// Priority: BANCA_CONFIG env var > XDG_CONFIG_HOME/banca/console.yaml > ~/.config/banca/console.yaml
func getConfigPath() string {
	if envPath := os.Getenv("BANCA_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "console.yaml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "banca", "console.yaml")
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist.
func loadConfig(path string) (*config.Config, bool, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), false, nil
	}
	return nil, false, fmt.Errorf("loading config: %w", err)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: banca-console <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the web console")
		fmt.Println("  init     Create a new config file interactively")
		fmt.Println("  health   Check console health")
		fmt.Println("  ready    Check that the console reaches the banking API")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runProbe(ctx, "/health")
	case "ready":
		err = runProbe(ctx, "/health/ready")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, found, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging, os.Stdout)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s", configPath)
	if !found {
		yellow.Print(" (not found, using defaults)")
	}
	fmt.Println()
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("API:       %s\n", cfg.API.BaseURL)
	green.Print("    ▶ ")
	fmt.Printf("Audit:     ")
	if cfg.Audit.Path != "" {
		fmt.Println(cfg.Audit.Path)
	} else {
		gray.Println("disabled")
	}
	fmt.Println()

	if cfg.Telemetry.Enabled {
		shutdown, err := otelconfig.ConfigureOpenTelemetry(
			otelconfig.WithServiceName(cfg.Telemetry.ServiceName),
			otelconfig.WithServiceVersion(version),
		)
		if err != nil {
			return fmt.Errorf("configuring telemetry: %w", err)
		}
		defer shutdown()
		logger.Info("telemetry enabled", "service", cfg.Telemetry.ServiceName)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx)
}

func runProbe(ctx context.Context, path string) error {
	cfg, _, err := loadConfig(getConfigPath())
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://%s%s", cfg.Server.HTTPAddr, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	fmt.Println(strings.TrimSpace(string(body)))
	return nil
}

func runInit() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("banca-console configuration setup")
	fmt.Println("=================================")
	fmt.Println()

	outputFile := prompt(reader, "Config file path", getConfigPath())

	if _, err := os.Stat(outputFile); err == nil {
		overwrite := prompt(reader, "File exists. Overwrite?", "no")
		if !isYes(overwrite) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	fmt.Println("\n--- Server ---")
	httpAddr := prompt(reader, "HTTP address", config.DefaultHTTPAddr)

	fmt.Println("\n--- Banking API ---")
	baseURL := prompt(reader, "API base URL", config.DefaultBaseURL)
	timeout := prompt(reader, "Request timeout (empty for none)", "")

	fmt.Println("\n--- Audit journal ---")
	auditPath := ""
	if isYes(prompt(reader, "Enable audit journal?", "no")) {
		auditPath = prompt(reader, "SQLite journal path", "~/.local/share/banca/audit.db")
	}

	fmt.Println("\n--- Logging ---")
	logLevel := prompt(reader, "Log level (debug/info/warn/error)", "info")
	logFormat := prompt(reader, "Log format (text/json)", "text")

	fmt.Println("\n--- Telemetry ---")
	telemetry := isYes(prompt(reader, "Export OpenTelemetry traces?", "no"))

	var cfg strings.Builder
	cfg.WriteString("# banca-console configuration\n")
	cfg.WriteString("# Generated by banca-console init\n\n")

	cfg.WriteString("server:\n")
	cfg.WriteString(fmt.Sprintf("  http_addr: %q\n\n", httpAddr))

	cfg.WriteString("api:\n")
	cfg.WriteString(fmt.Sprintf("  base_url: %q\n", baseURL))
	if timeout != "" {
		cfg.WriteString(fmt.Sprintf("  timeout: %q\n", timeout))
	}
	cfg.WriteString("\n")

	cfg.WriteString("session:\n")
	cfg.WriteString("  ttl: \"12h\"\n")
	cfg.WriteString(fmt.Sprintf("  max_sessions: %d\n\n", config.DefaultMaxSessions))

	cfg.WriteString("audit:\n")
	cfg.WriteString(fmt.Sprintf("  path: %q\n\n", auditPath))

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: %q\n", logLevel))
	cfg.WriteString(fmt.Sprintf("  format: %q\n\n", logFormat))

	cfg.WriteString("telemetry:\n")
	cfg.WriteString(fmt.Sprintf("  enabled: %t\n", telemetry))
	cfg.WriteString(fmt.Sprintf("  service_name: %q\n", config.DefaultServiceName))

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(cfg.String()), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if _, err := config.Load(outputFile); err != nil {
		return fmt.Errorf("config written to %s is invalid: %w", outputFile, err)
	}

	fmt.Printf("\nConfig written to %s\n", outputFile)
	fmt.Println("\nTo start the console:")
	fmt.Println("  banca-console serve")

	return nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "si", "sí", "s":
		return true
	default:
		return false
	}
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", question, defaultVal)
	} else {
		fmt.Printf("%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}
