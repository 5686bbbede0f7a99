package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	notectl "github.com/unowned-ai/notectl/pkg"
	"github.com/unowned-ai/notectl/pkg/config"
	pkgdb "github.com/unowned-ai/notectl/pkg/db"
	"github.com/unowned-ai/notectl/pkg/utils"
)

var (
	dbPath  string
	verbose bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:     "notectl",
	Short:   "Lightning-fast note-taking and task management CLI.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", notectl.Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load("")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		if verbose {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			pkgdb.SetLogger(logger)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for notectl.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(notectl completion bash)

  Bash (persist):
    $ notectl completion bash > /etc/bash_completion.d/notectl

  Zsh:
    $ notectl completion zsh > "${fpath[1]}/_notectl"

  Fish:
    $ notectl completion fish | source
    $ notectl completion fish > ~/.config/fish/completions/notectl.fish

  PowerShell:
    PS> notectl completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notectl",
	Long:  `All software has versions. This is notectl's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(notectl.Version)
	},
}

// openDB resolves the database location (--dbpath flag, then config, then the
// platform default), ensures its parent directory exists, connects, and applies
// the schema. Every subcommand goes through here.
func openDB() (*sql.DB, error) {
	requested := dbPath
	if requested == "" {
		requested = cfg.DBPath
	}

	resolved, err := utils.ResolveAndEnsureDBPath(requested)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	conn, err := pkgdb.OpenDBConnection(resolved, true, "NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pkgdb.Initialize(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return conn, nil
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "Path to the notectl SQLite database file (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostic logging on stderr")

	initNotesCmds()
	initDailyCmd()
	initTodoCmds()
	initTagsCmd()
	initTemplateCmds()
	initExportCmd()
	initStatsCmd()

	rootCmd.AddCommand(
		completionCmd,
		versionCmd,
		addCmd,
		listCmd,
		searchCmd,
		showCmd,
		editCmd,
		deleteCmd,
		dailyCmd,
		todoCmd,
		tagsCmd,
		templateCmd,
		newCmd,
		exportCmd,
		statsCmd,
		mcpCmd,
	)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
