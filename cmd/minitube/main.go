package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/minitube/internal/catalog"
	"github.com/mmcdole/minitube/internal/config"
	"github.com/mmcdole/minitube/internal/domain"
	"github.com/mmcdole/minitube/internal/library"
	"github.com/mmcdole/minitube/internal/log"
	"github.com/mmcdole/minitube/internal/player"
	"github.com/mmcdole/minitube/internal/store"
	"github.com/mmcdole/minitube/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	configFile  string
	writeConfig bool
	importFile  string
	into        string
	list        bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configFile, "config", "", "path to config file")
	flag.BoolVar(&opts.writeConfig, "write-config", false, "write a default config file (to -config or the default location) and exit")
	flag.StringVar(&opts.importFile, "import", "", "import videos (or channels, with -into subscriptions) from a saved API response or JSON array")
	flag.StringVar(&opts.into, "into", "watch-later", "collection to import into (watch-later, liked, history, subscriptions)")
	flag.BoolVar(&opts.list, "list", false, "print collections and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("minitube %s\n", Version)
		return
	}

	if opts.writeConfig {
		if err := writeConfig(os.Stdout, opts.configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	mainLog := log.Component(logger, log.ComponentMain)
	mainLog.Info("starting minitube", "version", Version)

	s := openStore(cfg.Storage, log.Component(logger, log.ComponentStore))
	defer s.Close()

	if opts.importFile != "" {
		// An import into a memory-only store would report success and vanish
		if err := requirePersistent(s); err != nil {
			return err
		}
	}

	lib := library.New(s,
		library.WithLogger(log.Component(logger, log.ComponentLibrary)),
		library.WithHistoryLimit(cfg.Library.HistoryLimit),
	)
	lib.Init()

	if opts.importFile != "" {
		return runImport(lib, opts.importFile, opts.into, mainLog)
	}

	if opts.list || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printCollections(os.Stdout, lib)
	}

	session := player.NewSession(log.Component(logger, log.ComponentPlayer))
	model := tui.NewModel(lib, session, cfg.UI.StartRoute, log.Component(logger, log.ComponentTUI))

	p := tea.NewProgram(model, tea.WithAltScreen())

	mainLog.Info("starting TUI", "persistent", s.Persistent())

	if _, err := p.Run(); err != nil {
		mainLog.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	mainLog.Info("shutting down")
	return nil
}

// openStore opens the durable store, degrading to memory-only when the
// database is held by another process or cannot be opened
func openStore(cfg config.StorageConfig, logger *slog.Logger) *store.BoltStore {
	s, err := store.NewBoltStore(cfg.Dir, cfg.LockTimeout)
	if err == nil {
		return s
	}

	if errors.Is(err, store.ErrStoreLocked) {
		logger.Warn("store in use by another process, changes will not be saved", "error", err)
		fmt.Fprintln(os.Stderr, "Warning: another minitube is running; changes in this session will not be saved.")
	} else {
		logger.Warn("failed to open store, changes will not be saved", "dir", cfg.Dir, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v; changes in this session will not be saved.\n", err)
	}
	return store.NewMemoryStore()
}

// writeConfig writes the default configuration to path, or to the default
// config file when path is empty. An existing file is left alone.
func writeConfig(w io.Writer, path string) error {
	if path == "" {
		path = config.DefaultConfigFile()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	written, err := config.SaveConfig(config.DefaultConfig(), path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote config to %s\n", written)
	return nil
}

// errNotPersistent means writes would only reach memory
var errNotPersistent = errors.New("collections store is not persistent; nothing would be saved")

// requirePersistent rejects commands whose only effect is a durable write
func requirePersistent(s *store.BoltStore) error {
	if !s.Persistent() {
		return errNotPersistent
	}
	return nil
}

// runImport loads catalog records from path into the named collection.
// Subscriptions read channel records; the video collections read videos.
func runImport(lib *library.Library, path, into string, logger *slog.Logger) error {
	kind, ok := domain.ParseCollectionKind(into)
	if !ok {
		return fmt.Errorf("unknown collection %q", into)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	if kind == domain.CollectionSubscriptions {
		channels, err := catalog.DecodeChannels(f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		added := lib.ImportChannels(channels)
		logger.Info("import finished", "file", path, "collection", kind.String(), "read", len(channels), "added", added)
		fmt.Printf("Imported %d of %d channels into %s\n", added, len(channels), kind)
		return nil
	}

	videos, err := catalog.DecodeVideos(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	added := lib.Import(kind, videos)
	logger.Info("import finished", "file", path, "collection", kind.String(), "read", len(videos), "added", added)
	fmt.Printf("Imported %d of %d videos into %s\n", added, len(videos), kind)
	return nil
}

// printCollections writes every collection as plain text
func printCollections(w io.Writer, lib *library.Library) error {
	for _, kind := range domain.Kinds {
		if _, err := fmt.Fprintf(w, "%s (%d)\n", kind, lib.Count(kind)); err != nil {
			return err
		}
		if kind == domain.CollectionSubscriptions {
			for _, c := range lib.Subscriptions.List() {
				fmt.Fprintf(w, "  %s\t%s\n", c.ChannelID, c.ChannelTitle)
			}
			continue
		}
		for _, v := range lib.Videos(kind) {
			line := fmt.Sprintf("  %s\t%s\t%s", v.VideoID, v.Title, v.Channel)
			if !v.WatchedAt.IsZero() {
				line += "\t" + v.WatchedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}
