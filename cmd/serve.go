package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a
local web server to serve your output directory. It also watches your content,
layouts, data, and static directories for changes and automatically rebuilds
the site.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("Performing initial build...")
		if err := runBuild(siteConfig, "."); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}
		log.Println("Initial build successful.")

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		go watchAndRebuild(watcher)

		for _, rootPath := range watchPaths(siteConfig.Theme, cfgFile) {
			info, statErr := os.Stat(rootPath)
			if os.IsNotExist(statErr) {
				log.Printf("Path %q not found, not watching.", rootPath)
				continue
			}
			if statErr == nil && !info.IsDir() {
				// config.yaml is a single file, not a tree.
				if watchErr := watcher.Add(rootPath); watchErr != nil {
					log.Printf("Failed to watch %s: %v", rootPath, watchErr)
				}
				continue
			}
			log.Printf("Setting up watch for %s and its subdirectories...", rootPath)
			err = filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					log.Printf("Error walking %s: %v", path, err)
					return nil
				}
				if d.IsDir() {
					if watchErr := watcher.Add(path); watchErr != nil {
						log.Printf("Failed to watch %s: %v", path, watchErr)
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("Error during initial directory walk for watching %s: %v", rootPath, err)
			}
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		log.Printf("Serving site from %q on http://localhost%s", siteConfig.OutputDir, serverAddr)
		log.Println("Press Ctrl+C to stop the server.")

		fs := http.FileServer(http.Dir(siteConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				_, err := os.Stat(filepath.Join(siteConfig.OutputDir, r.URL.Path, "index.html"))
				if os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			// No caching during development.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fs.ServeHTTP(w, r)
		})

		return http.ListenAndServe(serverAddr, nil)
	},
}

// watchPaths is the set of paths the serve command watches: the content
// tree, layouts, static assets, data files, the active theme, and the site
// config file itself so config edits rebuild too.
func watchPaths(theme, configFile string) []string {
	paths := []string{contentDir, layoutsDir, staticDir, dataDir}
	if theme != "" {
		paths = append(paths, filepath.Join(themesDir, theme))
	}
	if configFile == "" {
		configFile = "config.yaml"
	}
	return append(paths, configFile)
}

// watchAndRebuild reacts to filesystem events with a short debounce so a
// burst of writes triggers a single rebuild.
func watchAndRebuild(watcher *fsnotify.Watcher) {
	var buildTimer *time.Timer
	debounceDuration := 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				log.Printf("Change detected: %s (%s)", event.Name, event.Op.String())

				// New subdirectories are not watched automatically.
				if event.Has(fsnotify.Create) && isDir(event.Name) {
					if err := watcher.Add(event.Name); err != nil {
						log.Printf("Error adding new directory %s to watcher: %v", event.Name, err)
					}
				}

				if buildTimer != nil {
					buildTimer.Stop()
				}
				buildTimer = time.AfterFunc(debounceDuration, func() {
					log.Println("Rebuilding site due to changes...")
					// Reload the config so edits to config.yaml take
					// effect in this rebuild, not the next restart.
					if err := initializeConfig(nil); err != nil {
						log.Printf("Error reloading config: %v", err)
						return
					}
					if err := runBuild(siteConfig, "."); err != nil {
						log.Printf("Error during rebuild: %v", err)
					} else {
						log.Println("Site rebuilt successfully.")
					}
				})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	serveCmd.Flags().BoolVar(&includeDrafts, "drafts", false, "include documents marked draft: true")
	rootCmd.AddCommand(serveCmd)
}
