// Copyright 2025 The tagserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the tagserve IPC server and CLI [DBG] application.

tagserve loads a word list or a plain text document into a dual-mode tag
index, freezes it, and answers exact, prefix, substring and closest-match
queries. It can run as a MessagePack IPC server for editors and scripts, or
as an interactive CLI for poking at a document.

# Usage

Serve a word list with default settings:

	tagserve -data words.lst

Index a text document and explore it interactively:

	tagserve -data notes.md -c -limit 10

Force the input format and expose prometheus metrics:

	tagserve -data dump.log -format text -metrics :9464

Each tag is stored with the 1-based line number it first appeared on, so a
lookup doubles as a "which line is this word on" query.

# Configuration

Runtime configuration is managed through a TOML file. The file is created
with defaults if it doesn't exist:

	[server]
	max_limit = 64
	max_query = 60
	cache_size = 1024

	[index]
	separators = " \t,.;:!?\"'()[]{}<>/"
	lowercase = true
	format = "auto"

	[cli]
	default_limit = 5
	default_no_filter = false

A file that only partly decodes keeps every key that still parses.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout:

	{"id": "req1", "a": "prefix", "q": "ba", "l": 20}
	{"id": "req1", "s": ["ball", "base", "bat"], "c": 3, "t": 41}

See the server package for every action and reply shape.

# CLI Mode

	> bat          exact lookup, or a did-you-mean suggestion
	> ba*          prefix search
	> *at*         substring search

# Command Line Flags

	-data string
	    Input file to index
	-format string
	    Input format: auto, lines or text (default from config)
	-config string
	    Path to a config.toml
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of results to list in CLI mode (default from config)
	-no-filter
	    Disable CLI input filtering
	-metrics string
	    Address to serve prometheus metrics on, e.g. :9464
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/tagserve/internal/cli"
	"github.com/bastiangx/tagserve/internal/logger"
	"github.com/bastiangx/tagserve/pkg/config"
	"github.com/bastiangx/tagserve/pkg/dictionary"
	"github.com/bastiangx/tagserve/pkg/engine"
	"github.com/bastiangx/tagserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "tagserve"
	gh      = "https://github.com/bastiangx/tagserve"
)

// sigHandler cancels ctx and exits on SIGINT or SIGTERM. The server blocks
// in a read on stdin, so cancelling alone would not stop it.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow: config, ingestion, then CLI or server.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Input file to index (.lst/.words/.dict word list or .txt/.md text)")
	formatName := flag.String("format", "", "Input format: auto, lines or text (default from config)")
	configPath := flag.String("config", "", "Path to a config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of results to list in CLI mode (default from config)")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering")
	metricsAddr := flag.String("metrics", "", "Serve prometheus metrics on this address, e.g. :9464")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedConfig))

	if *formatName == "" {
		*formatName = cfg.Index.Format
	}
	format, err := dictionary.ParseFormat(*formatName)
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}
	if *limit <= 0 {
		*limit = cfg.CLI.DefaultLimit
	}

	index, err := buildIndex(*dataPath, format, dictionary.Tokenizer{
		Separators: cfg.Index.Separators,
		Lowercase:  cfg.Index.Lowercase,
	})
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", *limit, "noFilter", *noFilter || cfg.CLI.DefaultNoFilter)

		out := logger.NewWriter(os.Stdout, "")
		inputHandler := cli.NewInputHandler(index, out, *limit, cfg.Server.MaxQuery, *noFilter || cfg.CLI.DefaultNoFilter)
		if err := inputHandler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	metrics := server.NewMetrics()
	if *metricsAddr != "" {
		go func() {
			if err := server.ServeMetrics(ctx, *metricsAddr, metrics); err != nil {
				log.Errorf("Metrics server: %v", err)
			}
		}()
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(index, os.Stdin, os.Stdout, server.OptionsFromConfig(cfg.Server), metrics)
	showStartupInfo(*dataPath, index.Size())

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildIndex loads path into a fresh engine and freezes it for searching.
// An empty path gives an empty index.
func buildIndex(path string, format dictionary.Format, tok dictionary.Tokenizer) (*engine.Engine[int], error) {
	index := engine.New[int]()
	ingest := logger.New("ingest")

	if path == "" {
		ingest.Warn("No input file specified, running with an empty index...")
	} else {
		stats, err := dictionary.LoadFile(path, format, tok, index)
		if err != nil {
			return nil, err
		}
		ingest.Debug("Loaded", "file", path, "lines", stats.Lines, "tags", stats.Added, "repeats", stats.Skipped)
	}

	if err := index.ChangeToSearchMode(); err != nil {
		return nil, err
	}
	return index, nil
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Printf("[ %s ] Tags your documents, finds them again", AppName)
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dataPath string, size int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	println("==========")
	println(" tagserve ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("input: ( %s )", dataPath)
	log.Infof("tags: %d", size)
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")
}
