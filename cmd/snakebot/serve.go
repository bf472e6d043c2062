package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/platform/tui"
	"github.com/vovakirdan/snakebot/internal/spectate"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagRestartDelay time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve [solver]",
	Short: "Stream a shared autopilot game over SSH",
	Long: `Start an SSH server that streams one autopilot game to every
connected session. A new game starts shortly after each one ends and every
finished game is stored in the runs database.

Spectators can press Tab to switch the solver for everyone and D to toggle
the path overlay on their own screen.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snakebot/host_key

Examples:
  snakebot serve                     # Listen on :23234 with auto-generated key
  snakebot serve greedy --ssh :2222  # Stream the greedy solver on port 2222

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	f.StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	f.IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	f.DurationVar(&flagRestartDelay, "restart-delay", 3*time.Second, "How long a finished game stays on screen")
}

func runServe(cmd *cobra.Command, args []string) error {
	solverID := cfg.Solver
	if len(args) == 1 {
		solverID = args[0]
	}
	if err := checkSolver(solverID); err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	size := boardSize()

	hub, err := spectate.NewHub(spectate.HubConfig{
		Size:         size,
		Solver:       solverID,
		TickRate:     cfg.Tick.Rate,
		StallLimit:   cfg.Bench.StallLimit(size.Cells()),
		RestartDelay: flagRestartDelay,
		Seed:         seed,
	}, logger.WithPrefix("hub"))
	if err != nil {
		return err
	}

	if store := openStore(); store != nil {
		defer store.Close()
		hub.SetRunSaver(store)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Theme:       cfg.Render.Theme,
	}, hub, logger.WithPrefix("ssh"))
	if err != nil {
		return err
	}

	fmt.Printf("Streaming %s on a %dx%d board at %s\n", solverID, size.W, size.H, server.Addr())
	fmt.Printf("Connect with: ssh <host> -p <port> (listening on %s)\n", flagSSHAddr)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(cmd.Context())
}
