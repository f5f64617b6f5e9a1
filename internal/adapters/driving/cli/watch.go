package cli

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/logger"
)

var (
	watchDebounce int
	watchSections []string
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rebuild the context index when repository files change",
	Long: `Watches the repository tree and rebuilds the context index as files
change. Rebuilds run at most once per debounce interval; changes landing
mid-build fold into the next pass, so every change is eventually
indexed.

Dot directories and dependency trees (node_modules, vendor, ...) are
not watched. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "milliseconds between rebuilds (default: configured value)")
	watchCmd.Flags().StringSliceVar(&watchSections, "sections", nil, "sections to resolve (default: configured sections)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args, 0)
	if err != nil {
		return err
	}

	services, err := buildServices(root, ServiceOverrides{})
	if err != nil {
		return err
	}

	settings := services.Settings.Settings()

	debounce := settings.Watch.DebounceMillis
	if watchDebounce > 0 {
		debounce = watchDebounce
	}
	if debounce <= 0 {
		debounce = domain.DefaultWatchDebounceMillis
	}

	sections := watchSections
	if len(sections) == 0 {
		sections = settings.Index.Sections
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watchTree(watcher, root); err != nil {
		return err
	}

	// Initial build so the store reflects the tree before the first event.
	if result, err := services.Contexts.BuildContexts(ctx, root, sections); err != nil {
		cmd.PrintErrf("initial build failed: %v\n", err)
	} else {
		cmd.Printf("Watching %s (%d indexed, %d skipped, debounce %dms)\n",
			root, result.FilesIndexed, result.FilesSkipped, debounce)
	}

	// Coalesce change bursts into a single pending rebuild.
	dirty := make(chan struct{}, 1)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevantChange(root, event) {
					continue
				}
				// New directories are not watched automatically.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watchTree(watcher, event.Name); err != nil {
							logger.Warn("Watch %s: %v", event.Name, err)
						}
					}
				}
				select {
				case dirty <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	limiter := rate.NewLimiter(rate.Every(time.Duration(debounce)*time.Millisecond), 1)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped watching.")
			return nil
		case <-dirty:
			if err := limiter.Wait(ctx); err != nil {
				cmd.Println("\nStopped watching.")
				return nil
			}

			result, err := services.Contexts.BuildContexts(ctx, root, sections)
			if err != nil {
				if ctx.Err() != nil {
					cmd.Println("\nStopped watching.")
					return nil
				}
				cmd.PrintErrf("rebuild failed: %v\n", err)
				continue
			}
			cmd.Printf("[%s] %d indexed, %d skipped, %d pruned\n",
				time.Now().Format("15:04:05"), result.FilesIndexed, result.FilesSkipped, result.PathsPruned)
		}
	}
}

// watchTree registers dir and every descendant directory that the
// scanner would visit.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && skipWatchDir(entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// watchSkipDirs mirrors the scanner's skip list so the watcher ignores
// the same trees, the signal cache and chunk store included.
var watchSkipDirs = map[string]struct{}{
	"node_modules": {}, "vendor": {}, "dist": {}, "target": {},
	"__pycache__": {}, ".venv": {},
}

func skipWatchDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, skip := watchSkipDirs[name]
	return skip
}

// relevantChange filters watcher events down to content changes inside
// scanned parts of the tree.
func relevantChange(root string, event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}

	rel, err := filepath.Rel(root, event.Name)
	if err != nil {
		return false
	}

	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "." && part != ".." && skipWatchDir(part) {
			return false
		}
	}
	return true
}
