package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jeanpaul/musage/internal/agent"
	"github.com/jeanpaul/musage/internal/config"
	"github.com/jeanpaul/musage/internal/conversation"
	"github.com/jeanpaul/musage/internal/learning"
	"github.com/jeanpaul/musage/internal/scraper"
	"github.com/jeanpaul/musage/internal/search"
	"github.com/jeanpaul/musage/internal/simpleqa"
	"github.com/jeanpaul/musage/internal/webpipe"
	"github.com/jeanpaul/musage/pkg/version"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")
	offlineFlag := flag.Bool("offline", false, "Disable the web tier")
	noLearnFlag := flag.Bool("no-learning", false, "Disable the learned answer store")
	debugFlag := flag.Bool("debug", false, "Verbose logging")
	storageFlag := flag.String("storage", "", "Override the storage directory")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("musage %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *storageFlag != "" {
		cfg.StorageDir = *storageFlag
	}
	if *noLearnFlag {
		cfg.LearningDisabled = true
	}
	if *debugFlag {
		cfg.Debug = true
	}

	a, err := buildAgent(cfg, *offlineFlag)
	if err != nil {
		fatal("Failed to initialize: %v", err)
	}

	// Subcommands and one-shot mode
	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "stats":
			printStats(a.GetStatistics())
			return
		case "export":
			path := "learned_answers.yaml"
			if len(args) > 1 {
				path = args[1]
			}
			if err := a.ExportLearnedYAML(path); err != nil {
				fatal("Export failed: %v", err)
			}
			fmt.Printf("Exported %d learned answers to %s\n", len(a.ExportLearned()), path)
			return
		default:
			// Anything else is a one-shot question.
			query := strings.Join(args, " ")
			resp := a.Ask(context.Background(), query)
			printAnswer(resp)
			return
		}
	}

	runREPL(a)
}

func buildAgent(cfg *config.Config, offline bool) (*agent.Agent, error) {
	sys, err := learning.Open(cfg)
	if err != nil {
		return nil, err
	}
	conv, err := conversation.Open(cfg.StorageDir, cfg.MaxHistory)
	if err != nil {
		return nil, err
	}

	var web agent.WebPipeline
	if !offline {
		web = webpipe.New(search.New(cfg), scraper.New(cfg))
	}
	return agent.New(cfg, sys, simpleqa.New(), web, conv), nil
}

func showHelp() {
	fmt.Println(`musage - a personal assistant that learns from your feedback

Usage:
  musage                     Interactive session
  musage <question>          Ask one question and exit
  musage stats               Show usage statistics
  musage export [file]       Export learned answers to YAML

Flags:
  -offline       Disable the web tier
  -no-learning   Disable the learned answer store
  -storage DIR   Override the storage directory
  -debug         Verbose logging
  -version       Print version
  -h, -help      Show this help`)
}

func fatal(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
