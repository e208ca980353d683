package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/feature-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("feature-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("feature-tools-mcp - MCP server for ORB/TEBLID feature extraction")
			fmt.Println()
			fmt.Println("Usage: feature-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug            Enable debug logging\n", server.EnvLogLevel)
			fmt.Printf("  %s=500          ORB feature budget\n", server.EnvORBNFeatures)
			fmt.Printf("  %s=1.2       ORB pyramid scale factor\n", server.EnvORBScaleFactor)
			fmt.Printf("  %s=8              ORB pyramid levels\n", server.EnvORBNLevels)
			fmt.Printf("  %s=6.25   TEBLID sampling scale\n", server.EnvTEBLIDScaleFactor)
			fmt.Printf("  %s=256              TEBLID bits (256 or 512)\n", server.EnvTEBLIDBits)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := server.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("Feature MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
