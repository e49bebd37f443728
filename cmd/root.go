package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkfell/inkfell/internal/config"
	"github.com/inkfell/inkfell/internal/content"
)

var cfgFile string
var siteConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "inkfell",
	Short: "Inkfell - a Markdown static site generator for personal blogs",
	Long: `Inkfell takes your Markdown content, merges in site-wide metadata
defaults, and outputs a static HTML website: post pages, category archives,
paginated listings, an RSS feed and a sitemap.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	v.SetDefault("title", "An Inkfell Site")
	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "")
	v.SetDefault("paginate", 10)
	v.SetDefault("permalink", content.DefaultPermalink)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("INKFELL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
			log.Println("No config file found in current directory; using defaults and environment variables.")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Println("Using config file:", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&siteConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	for _, p := range siteConfig.Plugins {
		if !config.IsKnownPlugin(p) {
			log.Printf("Warning: unknown plugin %q in config, ignoring.", p)
		}
	}
	return nil
}
