package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atikulmunna/hitcount/internal/analyzer"
	"github.com/atikulmunna/hitcount/internal/classifier"
	"github.com/atikulmunna/hitcount/internal/log"
	"github.com/atikulmunna/hitcount/internal/output"
	"github.com/atikulmunna/hitcount/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errUsage is returned after the usage message has already been printed.
var errUsage = errors.New("no log files passed")

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newRootCommand builds the command tree around its own viper instance.
func newRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "hitcount [file ...]",
		Short: "Count hits per IP and URL in access logs",
		Long: `hitcount analyzes access logs for unique IP addresses and unique URLs.

For every file it prints the total hits per IP (with hits on the secret
resource), the hits per .html URL and the total number of 404 errors.
Arguments may be glob patterns such as "/var/log/**/access*.log".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			return log.Init(log.Config{
				Level: v.GetString("log.level"),
				File:  v.GetString("log.file"),
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printUsage(cmd.OutOrStdout(), cmd.Root().Name())
				return errUsage
			}
			return runAnalyze(cmd.OutOrStdout(), v, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.hitcount.yaml)")
	flags.StringP("output", "o", "text", "output format: text, json, yaml")
	flags.Bool("color", false, "colorize text output")
	flags.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	flags.String("log-file", "", "also write diagnostics to this rotating file")
	flags.String("secret-pattern", "", "regex marking a request for the secret resource (default \"secret\")")
	flags.String("error-pattern", "", "regex marking an error line (default \"404\")")

	for key, name := range map[string]string{
		"output":          "output",
		"color":           "color",
		"log.level":       "log-level",
		"log.file":        "log-file",
		"patterns.secret": "secret-pattern",
		"patterns.error":  "error-pattern",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(newWatchCommand(v), newServeCommand(v))
	return cmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("HITCOUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigName(".hitcount")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func printUsage(w io.Writer, name string) {
	fmt.Fprintln(w, "No log files passed, please pass at least one log file.")
	fmt.Fprintf(w, "USAGE: %s file1 [file2 ...]\n", name)
}

func runAnalyze(w io.Writer, v *viper.Viper, args []string) error {
	a, err := newAnalyzer(v)
	if err != nil {
		return err
	}
	paths, err := source.Expand(args)
	if err != nil {
		return err
	}
	return a.Run(w, paths)
}

// newAnalyzer builds an Analyzer from the resolved configuration.
func newAnalyzer(v *viper.Viper) (*analyzer.Analyzer, error) {
	c, err := classifier.New(classifier.Patterns{
		IP:     v.GetString("patterns.ip"),
		URL:    v.GetString("patterns.url"),
		Secret: v.GetString("patterns.secret"),
		Error:  v.GetString("patterns.error"),
	})
	if err != nil {
		return nil, err
	}

	r, err := output.ForFormat(v.GetString("output"), v.GetBool("color"))
	if err != nil {
		return nil, err
	}
	return analyzer.New(c, r), nil
}
