package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"replsession.dev/repl"
	"replsession.dev/repl/reader"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "replsh",
	Short:        "Interactive evaluation session shell",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace session internals to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	sess := repl.New(newDemoBackend(), reader.New(),
		repl.WithDefaults(repl.WithVerbose(verbose)))

	rl, err := readline.New("user=> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)

	for {
		rl.SetPrompt(string(sess.Namespace()) + "=> ")

		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		sess.Evaluate(context.Background(), line, func(ok bool, payload any) {
			if ok {
				if payload != nil {
					fmt.Println(payload)
				}
				return
			}

			failure := payload.(error)
			var warn *repl.WarningError
			if errors.As(failure, &warn) {
				warnColor.Fprintln(os.Stderr, warn.Message)
			} else {
				errColor.Fprintln(os.Stderr, failure)
			}
		})
	}

	return nil
}
