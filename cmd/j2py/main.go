// Command j2py translates source files from the accepted Java subset into
// Python source. It also embeds the HTTP translation service.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/diag"
	"github.com/Kashinulala/j2py/pkg/server"
	"github.com/Kashinulala/j2py/pkg/translator"
)

var version = "0.3.0"

var (
	flagConfig    string
	flagColor     string
	flagOutput    string
	flagStrict    bool
	flagNoPost    bool
	flagNoEntry   bool
	flagIndent    int
	flagNoWarn    []string
	flagServeAddr string
)

func main() {
	root := &cobra.Command{
		Use:           "j2py",
		Short:         "Translate a restricted Java subset to Python",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultFileName, "path to the project config file")
	root.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize diagnostics: auto, on or off")

	translateCmd := &cobra.Command{
		Use:   "translate <file.java>...",
		Short: "Translate one or more source files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTranslate,
	}
	translateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write generated code to a file instead of stdout")
	translateCmd.Flags().BoolVar(&flagStrict, "strict", false, "demote naming-convention errors to warnings")
	translateCmd.Flags().BoolVar(&flagNoPost, "no-post-process", false, "skip the textual fix-up stage")
	translateCmd.Flags().BoolVar(&flagNoEntry, "no-entry-call", false, "do not append the entry-method call")
	translateCmd.Flags().IntVar(&flagIndent, "indent", 0, "indentation width of generated code")
	translateCmd.Flags().StringSliceVar(&flagNoWarn, "no-warn", nil, "warning names to disable")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP translation service",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":8080", "listen address")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("j2py %s\n", version)
		},
	}

	root.AddCommand(translateCmd, serveCmd, versionCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "j2py: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if err := config.LoadFile(flagConfig, cfg); err != nil {
		return nil, err
	}
	if flagStrict {
		cfg.SetFeature(config.FeatStrict, true)
	}
	if flagNoPost {
		cfg.SetFeature(config.FeatPostProcess, false)
	}
	if flagNoEntry {
		cfg.SetFeature(config.FeatEntryCall, false)
	}
	if flagIndent > 0 {
		cfg.IndentWidth = flagIndent
	}
	for _, name := range flagNoWarn {
		wt, ok := cfg.WarningMap[name]
		if !ok {
			return nil, fmt.Errorf("unknown warning %q (known: %s)", name, strings.Join(warningNames(cfg), ", "))
		}
		cfg.SetWarning(wt, false)
	}
	return cfg, nil
}

func warningNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.WarningMap))
	for name := range cfg.WarningMap {
		names = append(names, name)
	}
	return names
}

func colorize() bool {
	switch flagColor {
	case "on":
		return true
	case "off":
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// runTranslate translates every named file, reporting diagnostics for all of
// them before deciding the exit status.
func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if flagOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output accepts a single input file")
	}

	combined := diag.NewBag()
	var out strings.Builder
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		source := string(data)

		res := translator.Translate(source, cfg)
		diag.Fprint(os.Stderr, path, source, res.Diagnostics.All(), colorize())
		combined.Merge(res.Diagnostics)
		out.WriteString(res.Code)
	}
	if combined.HasErrors() {
		return fmt.Errorf("%d error(s)", len(combined.Errors()))
	}

	if flagOutput != "" {
		return os.WriteFile(flagOutput, []byte(out.String()), 0o644)
	}
	fmt.Print(out.String())
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "j2py %s serving on %s\n", version, flagServeAddr)
	return server.NewServer(flagServeAddr, cfg).ListenAndServe()
}
