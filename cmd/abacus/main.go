package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/abacus-tui/abacus/internal/calc"
	"github.com/abacus-tui/abacus/internal/config"
	"github.com/abacus-tui/abacus/internal/logger"
	"github.com/abacus-tui/abacus/internal/ui"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   "abacus",
		Short: "A keypad calculator for the terminal",
		Long: `abacus is a four-function calculator driven by an on-screen keypad.
Click a button, or move the cursor with the arrow keys and press enter.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cfgPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), "abacus needs an interactive terminal")
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'abacus eval TOKEN...' for one-shot evaluation")
				return nil
			}
			return runTUI(cfg)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $HOME/.config/abacus/config.yaml)")
	root.AddCommand(newEvalCmd(&cfgPath), newConfigCmd(&cfgPath))
	return root
}

func newEvalCmd(cfgPath *string) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "eval [flags] [--] TOKEN...",
		Short: "Append each argument as a token, evaluate, and print the result",
		Long: `Append each argument as a token, evaluate, and print the result.

Flags must come before the first token. Arguments such as -3 or -1+2 are
tokens, not flags; use -- to end the flag list explicitly.`,
		Example: `  abacus eval 2 + 3 '*' 4
  abacus eval '(1+2)/4'
  abacus eval 5 -3
  abacus eval --trace -- -1+2`,
		// Negative numbers would otherwise be rejected as unknown shorthand
		// flags, so flags are parsed here from the leading arguments only.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			flags.AddFlagSet(cmd.InheritedFlags())

			flagArgs, tokens := splitArgs(flags, args)
			if err := flags.Parse(flagArgs); err != nil {
				return err
			}
			if help, _ := flags.GetBool("help"); help {
				return cmd.Help()
			}
			if len(tokens) == 0 {
				return errors.New("eval requires at least one token")
			}

			cfg, err := setup(*cfgPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			opts := []calc.Option{calc.WithPolicy(cfg.Policy())}
			if trace {
				opts = append(opts, calc.WithDisplay(calc.WriterDisplay{W: cmd.ErrOrStderr()}))
			}
			return evaluate(cmd.OutOrStdout(), tokens, opts...)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print the buffer to stderr after every operation")
	return cmd
}

// splitArgs separates the leading flags from the expression tokens. Only
// long flags and -h count as flags; the first other argument, or the one
// after "--", starts the tokens.
func splitArgs(flags *pflag.FlagSet, args []string) (flagArgs, tokens []string) {
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "--" {
			return args[:i], args[i+1:]
		}
		if a == "-h" {
			i++
			continue
		}
		if !strings.HasPrefix(a, "--") {
			break
		}
		name := strings.TrimPrefix(a, "--")
		if !strings.Contains(name, "=") {
			if f := flags.Lookup(name); f != nil && f.NoOptDefVal == "" {
				i++ // value is the next argument
			}
		}
		i++
	}
	if i > len(args) {
		i = len(args)
	}
	return args[:i], args[i:]
}

func evaluate(out io.Writer, tokens []string, opts ...calc.Option) error {
	acc := calc.New(opts...)
	for _, tok := range tokens {
		acc.Append(tok)
	}

	if err := acc.Evaluate(); err != nil {
		logger.Warn("evaluation failed", zap.Strings("tokens", tokens), zap.Error(err))
		return err
	}

	logger.Info("evaluated", zap.String("result", acc.Content()))
	fmt.Fprintln(out, acc.Content())
	return nil
}

func newConfigCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

// setup loads the config and starts the logger.
func setup(cfgPath string) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func runTUI(cfg *config.Config) error {
	logger.Info("starting", zap.String("version", Version), zap.Stringer("policy", cfg.Policy()))

	p := tea.NewProgram(initialModel(cfg.Policy(), cfg.DisplayWidth), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}

	logger.Info("stopped")
	return nil
}

var stdoutIsTerminal = func() bool {
	return isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
