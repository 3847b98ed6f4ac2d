package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/km-arc/go-passform/app"
	kernel "github.com/km-arc/go-passform/framework/app"
	"github.com/km-arc/go-passform/framework/config"
	"github.com/km-arc/go-passform/framework/logging"
	"github.com/km-arc/go-passform/password"
)

// errRejected makes the process exit 1 without cobra printing usage.
var errRejected = errors.New("password rejected")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "passform",
		Short:         "Validate new passwords against the create-password rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newCheckCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := config.Load(envFiles...)
			logger, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			application := kernel.New(kernel.WithConfig(cfg), kernel.WithLogger(logger))
			application.Register(&app.RouteServiceProvider{})
			application.Boot()

			if err := application.Run(ctx); err != nil {
				logger.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var (
		pw, confirm string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a password and its re-entry",
		Long: "Validate a password and its re-entry.\n\n" +
			"Without --password the two values are read from stdin, one per line.\n" +
			"Exits with status 1 when the pair is rejected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				var err error
				pw, confirm, err = readPair(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			return runCheck(cmd.OutOrStdout(), password.Input{Password: pw, Confirmation: confirm}, asJSON)
		},
	}
	cmd.Flags().StringVar(&pw, "password", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirmation", "", "re-entered password")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

type checkResult struct {
	Kind    password.Kind `json:"kind"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
}

func runCheck(w io.Writer, in password.Input, asJSON bool) error {
	res := password.Validate(in)

	if asJSON {
		err := json.NewEncoder(w).Encode(checkResult{Kind: res.Kind, Code: res.Code(), Message: res.Message()})
		if err != nil {
			return err
		}
	} else if res.OK() {
		fmt.Fprintln(w, "Password accepted")
	} else {
		fmt.Fprintln(w, res.Message())
	}

	if !res.OK() {
		return errRejected
	}
	return nil
}

func readPair(r io.Reader) (string, string, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for len(lines) < 2 && sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	if len(lines) < 2 {
		return "", "", errors.New("read stdin: expected password and confirmation on separate lines")
	}
	return lines[0], lines[1], nil
}
