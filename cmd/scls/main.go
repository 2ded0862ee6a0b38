// Package main implements the scls completion backend's server entry point.
//
// scls speaks the Language Server Protocol over stdin+stdout, merging
// completions from open-buffer word search, snippet templates,
// unicode-input sequences, filesystem paths, and BibLaTeX citation keys.
//
// # Config
//
// Runtime configuration is managed via a `config.toml` file, created
// automatically with defaults if one does not exist.
//
// # Subcommands
//
//	scls                          Start the language server on stdin+stdout.
//	scls fetch-external-snippets  Clone/update git-sourced snippet packs.
//	scls validate-snippets        Load every configured snippet source and report totals.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/scls-go/internal/logger"
	"github.com/bastiangx/scls-go/pkg/config"
	"github.com/bastiangx/scls-go/pkg/engine"
	"github.com/bastiangx/scls-go/pkg/lspserver"
	"github.com/bastiangx/scls-go/pkg/snippet"
	"github.com/bastiangx/scls-go/pkg/unicodeinput"
)

const (
	Version = "0.1.0"
	AppName = "scls"
	gh      = "https://github.com/bastiangx/scls-go"
)

type startOptions struct {
	configPath           string
	snippetsPath         string
	externalSnippetsPath string
	unicodeInputPath     string
}

func resolveStartOptions(configFile string) startOptions {
	configDir := config.ConfigDir()

	opts := startOptions{
		configPath:           configFile,
		snippetsPath:         os.Getenv("SNIPPETS_PATH"),
		externalSnippetsPath: os.Getenv("EXTERNAL_SNIPPETS_CONFIG"),
		unicodeInputPath:     os.Getenv("UNICODE_INPUT_PATH"),
	}
	if opts.configPath == "" {
		opts.configPath = configDir + "/config.toml"
	}
	if opts.snippetsPath == "" {
		opts.snippetsPath = configDir + "/snippets"
	}
	if opts.externalSnippetsPath == "" {
		opts.externalSnippetsPath = configDir + "/external-snippets.toml"
	}
	if opts.unicodeInputPath == "" {
		opts.unicodeInputPath = configDir + "/unicode-input"
	}
	return opts
}

func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	verbose := flag.Bool("v", false, "Toggle verbose logging")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open LOG_FILE %s: %v\n", logFile, err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logger.ParseLevelOrWarn(os.Getenv("SCLS_LOG_LEVEL")))
	}

	opts := resolveStartOptions(*configFile)

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "fetch-external-snippets":
			runFetchExternalSnippets(opts)
			return
		case "validate-snippets":
			runValidateSnippets(opts)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		default:
			printHelp()
			return
		}
	}

	serve(opts)
}

func serve(opts startOptions) {
	settings, err := config.InitConfig(opts.configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	snippets := loadSnippets(opts)
	snippetTable := snippet.NewTable(snippets)

	unicodeItems, err := unicodeinput.LoadFromPath(opts.unicodeInputPath)
	if err != nil {
		log.Warnf("failed to load unicode-input table: %v", err)
	}
	unicodeTable := unicodeinput.NewTable(unicodeItems)

	eng := engine.New(settings, snippetTable, unicodeTable)
	srv := lspserver.New(eng)

	log.Infof("%s %s starting on stdio", AppName, Version)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func loadSnippets(opts startOptions) []snippet.Snippet {
	var all []snippet.Snippet
	if loaded, err := snippet.LoadFromPath(opts.snippetsPath, nil); err != nil {
		log.Warnf("failed to load snippets from %s: %v", opts.snippetsPath, err)
	} else {
		all = append(all, loaded...)
	}
	if external, err := snippet.LoadExternalSnippets(opts.externalSnippetsPath); err != nil {
		log.Warnf("failed to load external snippets: %v", err)
	} else {
		all = append(all, external...)
	}
	return all
}

func runFetchExternalSnippets(opts startOptions) {
	log.Infof("reading external snippets config from: %s", opts.externalSnippetsPath)
	if err := snippet.FetchExternalSnippets(opts.externalSnippetsPath); err != nil {
		log.Fatalf("failed to fetch external snippets: %v", err)
	}
}

func runValidateSnippets(opts startOptions) {
	all := loadSnippets(opts)
	log.Infof("successful. total: %d", len(all))
}

func printHelp() {
	fmt.Println(`usage:
scls fetch-external-snippets
    Fetch external snippets (git clone or git pull).
scls validate-snippets
    Read all snippets to ensure correctness.
scls
    Start language server protocol on stdin+stdout.`)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[scls] Language server completions for words, snippets, unicode input, paths, and citations")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("Find out more at", "gh", gh)
}
