package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/handiism/workparts/internal/config"
	"github.com/handiism/workparts/internal/resolve"
)

func main() {
	// Command line flags
	var (
		rootFlag    = flag.String("root", "", "Music directory to scan for albums")
		configFlag  = flag.String("config", "", "Path to config file")
		reportFlag  = flag.Bool("report", false, "Write a JSON resolution report per album")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag  = flag.Bool("dry-run", false, "Resolve without writing tags")
	)

	flag.Parse()

	// CLI mode - require a music root
	if *rootFlag == "" && flag.NArg() == 0 {
		fmt.Println("Workparts - Resolve classical work hierarchies into tags")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  workparts -root <dir> [options]")
		fmt.Println("  workparts <dir> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: workparts-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *reportFlag {
		settings.WriteReport = true
	}
	if *dryRunFlag {
		settings.ModifyTags = false
	}

	// Get the music root
	root := *rootFlag
	if root == "" && flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	// Structured debug logging only when asked for
	logger := zap.NewNop()
	if *verboseFlag {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := resolve.NewManager(settings, logger, func(event resolve.ProgressEvent) {
		if event.Level == resolve.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case resolve.LevelError:
			prefix = "❌ "
		case resolve.LevelWarning:
			prefix = "⚠️  "
		case resolve.LevelSuccess:
			prefix = "✅ "
		case resolve.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	// Scan for albums
	fmt.Println("🎼 Workparts")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if err := manager.Initialize(ctx, root); err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
		os.Exit(1)
	}

	// Start resolutions
	fmt.Println("\n🔎 Resolving work hierarchies...")
	fmt.Println()

	if err := manager.StartResolutions(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nResolution cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during resolution: %v\n", err)
		os.Exit(1)
	}

	settled, total := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Resolved %d/%d tracks\n", settled, total)
	if *dryRunFlag {
		fmt.Println("   (dry run - no tags written)")
	}
}
