package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interaction gateway server",
	Long: `Start the hookcord gateway server.

The gateway listens for signed interaction callbacks, verifies their
signatures, and dispatches them to registered handlers. It can run in
foreground mode or be installed as a system service.

Examples:
  # Run in foreground (default)
  hookcord serve

  # Install as system service (requires sudo/admin privileges)
  sudo hookcord serve install

  # Control the service
  sudo hookcord serve start
  sudo hookcord serve stop
  sudo hookcord serve restart
  sudo hookcord serve status

  # Uninstall the service
  sudo hookcord serve uninstall`,
	Run: runServeDefault,
}

var serveRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gateway in foreground or as service",
	Long:  `Run the gateway. When installed as a service, this is called automatically.`,
	Run:   runServeRun,
}

var serveInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the gateway as a system service",
	Long: `Install the hookcord gateway as a system service.

This will register the gateway with the system service manager:
- Linux: systemd
- macOS: launchd
- Windows: Windows Service Manager

The service will be configured to start automatically on system boot.
Requires administrator/root privileges.`,
	Run: runServeInstall,
}

var serveUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the gateway service",
	Run:   runServeUninstall,
}

var serveStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gateway service",
	Run:   runServeStart,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the gateway service",
	Run:   runServeStop,
}

var serveRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the gateway service",
	Run:   runServeRestart,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check gateway service status",
	Run:   runServeStatus,
}

func init() {
	serveCmd.AddCommand(serveRunCmd)
	serveCmd.AddCommand(serveInstallCmd)
	serveCmd.AddCommand(serveUninstallCmd)
	serveCmd.AddCommand(serveStartCmd)
	serveCmd.AddCommand(serveStopCmd)
	serveCmd.AddCommand(serveRestartCmd)
	serveCmd.AddCommand(serveStatusCmd)
}

// runServeDefault runs the gateway in foreground mode (default behavior).
func runServeDefault(cmd *cobra.Command, args []string) {
	fmt.Println("Starting hookcord gateway in foreground mode...")
	fmt.Println("To install as a system service, use: hookcord serve install")
	fmt.Println()

	runServeForeground()
}

// runServeRun runs the gateway (called by service or manually).
func runServeRun(cmd *cobra.Command, args []string) {
	isService := os.Getenv("INVOCATION_ID") != "" || // systemd
		os.Getenv("_") == "/bin/launchd" || // launchd
		os.Getenv("SERVICE_NAME") != "" // Windows service

	if isService {
		if err := RunService(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running service: %v\n", err)
			os.Exit(1)
		}
	} else {
		runServeForeground()
	}
}

func runServeInstall(cmd *cobra.Command, args []string) {
	if err := InstallService(); err != nil {
		fmt.Fprintf(os.Stderr, "Error installing service: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nNote: Installing system services requires administrator privileges.")
		fmt.Fprintln(os.Stderr, "Please run with sudo (Linux/macOS) or as Administrator (Windows).")
		os.Exit(1)
	}
}

func runServeUninstall(cmd *cobra.Command, args []string) {
	if err := UninstallService(); err != nil {
		fmt.Fprintf(os.Stderr, "Error uninstalling service: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nNote: Uninstalling system services requires administrator privileges.")
		fmt.Fprintln(os.Stderr, "Please run with sudo (Linux/macOS) or as Administrator (Windows).")
		os.Exit(1)
	}
}

func runServeStart(cmd *cobra.Command, args []string) {
	if err := StartService(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting service: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nNote: Starting system services requires administrator privileges.")
		fmt.Fprintln(os.Stderr, "Please run with sudo (Linux/macOS) or as Administrator (Windows).")
		os.Exit(1)
	}
}

func runServeStop(cmd *cobra.Command, args []string) {
	if err := StopService(); err != nil {
		fmt.Fprintf(os.Stderr, "Error stopping service: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nNote: Stopping system services requires administrator privileges.")
		fmt.Fprintln(os.Stderr, "Please run with sudo (Linux/macOS) or as Administrator (Windows).")
		os.Exit(1)
	}
}

func runServeRestart(cmd *cobra.Command, args []string) {
	if err := RestartService(); err != nil {
		fmt.Fprintf(os.Stderr, "Error restarting service: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nNote: Restarting system services requires administrator privileges.")
		fmt.Fprintln(os.Stderr, "Please run with sudo (Linux/macOS) or as Administrator (Windows).")
		os.Exit(1)
	}
}

func runServeStatus(cmd *cobra.Command, args []string) {
	if err := StatusService(); err != nil {
		fmt.Fprintf(os.Stderr, "Error checking service status: %v\n", err)
		os.Exit(1)
	}
}
