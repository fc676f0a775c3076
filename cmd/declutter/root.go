package main

import (
	"io"
	"os"

	"declutter/internal/config"
	"declutter/internal/errors"
	"declutter/internal/history"
	"declutter/internal/log"
	"declutter/internal/move"
	"declutter/internal/nav"
	"declutter/internal/preview"
	"declutter/internal/scan"
	"declutter/internal/shortcuts"
	"declutter/internal/term"
	"declutter/internal/ui"

	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	var (
		configPath    string
		historyPath   string
		ignoreHistory bool
		noSave        bool
		quiet         bool
		verbose       bool
		skipSetup     bool
		recursive     bool
		depth         int
		excludes      []string
	)

	cmd := &cobra.Command{
		Use:   "declutter [paths...]",
		Short: "File batches of files into directories with single-key shortcuts",
		Long: `Declutter walks a batch of paths one file at a time. For each file it
shows the path and waits for a single keypress: a shortcut key moves the
file to that shortcut's directory, the arrow keys navigate or record the
file where it is, and '-' deletes it. Placements are remembered in a
history file so re-runs skip files that are already organized.`,
		Version: version,
		Args: func(cmd *cobra.Command, args []string) error {
			// A bare invocation should still show how to use the tool
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				cmd.Usage()
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags override whatever the config file provided
			flags := cmd.Flags()
			if flags.Changed("history") {
				cfg.History.Path = historyPath
			}
			if flags.Changed("ignore-history") {
				cfg.History.Disabled = ignoreHistory
			}
			if flags.Changed("no-save") {
				cfg.History.NoSave = noSave
			}
			if flags.Changed("quiet") {
				cfg.Output.Quiet = quiet
			}
			if flags.Changed("verbose") {
				cfg.Output.Verbose = verbose
			}
			if flags.Changed("skip-setup") {
				cfg.SkipSetup = skipSetup
			}
			if flags.Changed("recursive") {
				cfg.Scan.Recursive = recursive
			}
			if flags.Changed("depth") {
				cfg.Scan.Depth = depth
			}
			if flags.Changed("exclude") {
				cfg.Scan.Exclude = excludes
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.SetVerbose(cfg.Output.Verbose)
			return runSession(cfg, args, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/declutter/config.yaml)")
	cmd.Flags().StringVar(&historyPath, "history", config.DefaultHistoryPath(), "history file recording shortcuts and organized paths")
	cmd.Flags().BoolVarP(&ignoreHistory, "ignore-history", "i", false, "neither load nor save the history file")
	cmd.Flags().BoolVarP(&noSave, "no-save", "n", false, "load history but do not write it back")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVarP(&skipSetup, "skip-setup", "s", false, "skip the initial shortcut dialog")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into input directories")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "bound directory descent to N levels (implies -r)")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "glob pattern to skip during expansion (repeatable)")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Warn("could not load config: %v, using defaults", err)
		return config.New(), nil
	}
	return cfg, nil
}

// runSession wires the session from an already-resolved configuration:
// expand the inputs, load history, collect shortcuts, run the filing loop,
// and persist whatever the run resolved. Input and output are injected so
// tests can drive a whole session from a byte script.
func runSession(cfg *config.Config, args []string, in io.Reader, stdout io.Writer) error {
	out := ui.NewPrinter(stdout, cfg.Output.Quiet)

	paths, scanErrs := scan.Expand(args, scan.Options{
		Recursive: cfg.Scan.Recursive,
		Depth:     cfg.Scan.Depth,
		Exclude:   cfg.Scan.Exclude,
	})
	for _, err := range scanErrs {
		log.Warn("%v", err)
	}
	if len(paths) == 0 {
		out.Must("Nothing to organize.")
		return nil
	}

	useHistory := !cfg.History.Disabled
	historyPath := cfg.History.Path
	loaded := history.NewRecord()
	if useHistory {
		rec, err := history.Load(historyPath)
		if err != nil {
			log.Warn("history file %s: %v", historyPath, err)
		}
		loaded = rec
	}

	store := shortcuts.NewStore()
	store.MergeHistory(loaded.Shortcuts)
	if store.Len() > 0 {
		out.Say("Loaded %d shortcut(s) from %s", store.Len(), historyPath)
	}

	reader := term.NewReader(in, stdout)
	if !cfg.SkipSetup {
		out.Say("Enter shortcuts as '<key> <directory>', one per line; empty line to finish.")
		shortcuts.RunDialog(reader, store, out)
	}
	if store.Len() == 0 {
		return errors.New("enter or load at least one shortcut to organize files")
	}

	out.ShowControls(store, historyPath, useHistory)

	engine := nav.New(paths, nav.Config{
		Store:       store,
		History:     loaded,
		UseHistory:  useHistory,
		HistoryPath: historyPath,
		Keys:        reader,
		Mover:       move.New(),
		Resolver:    move.NewPromptResolver(reader, out),
		Preview: func(path string) error {
			return preview.Show(path, out.Out())
		},
		Dialog: func() int {
			return shortcuts.RunDialog(reader, store, out)
		},
		Out: out,
	})
	if err := engine.Run(); err != nil {
		return err
	}

	if engine.NewlyResolved() == 0 {
		out.Must("No new files found!")
		return nil
	}
	if !useHistory || cfg.History.NoSave {
		return nil
	}

	// Persist the union of everything this session learned: the live
	// shortcut map and the newly resolved paths. Save merges with
	// whatever is on disk, so concurrent runs keep each other's work.
	rec := history.NewRecord()
	for key, dir := range store.Map() {
		rec.SetShortcut(key, dir)
	}
	rec.Merge(engine.Session())
	if err := history.Save(rec, historyPath); err != nil {
		out.Must("%s", ui.Errored.Render("could not save history: "+err.Error()))
		return nil
	}
	out.Say("Saved %d new file location(s) to %s", engine.NewlyResolved(), historyPath)
	return nil
}
