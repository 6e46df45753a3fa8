package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the termtris SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own independent game. Nothing is shared
between sessions and nothing is stored.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.termtris/host_key

Examples:
  termtris serve                           # Listen on :23234 with auto-generated key
  termtris serve --ssh :2222               # Listen on port 2222
  termtris serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	settings, cfg, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr, "termtris-ssh")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Settings:    settings,
		TickRate:    cfg.Timing.TickRate(),
		Logger:      logger,
	})
	if err != nil {
		closeLog()
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting termtris SSH server on %s\n", flagSSHAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		closeLog()
		fail("server: %v", err)
	}
}
