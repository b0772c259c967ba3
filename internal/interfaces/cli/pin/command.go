// Package pin prints a bcrypt hash for auth.pin_hash so the plain PIN does
// not have to live in the configuration.
package pin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	infraauth "hungrylist/internal/infrastructure/auth"
)

var cost int

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-pin [pin]",
		Short: "Print a bcrypt hash of the household PIN",
		Long: `Print a bcrypt hash suitable for auth.pin_hash. Without an argument the
PIN is read from the terminal without echo, or from stdin when piped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pin string
			if len(args) == 1 {
				pin = args[0]
			} else {
				var err error
				if pin, err = readPIN(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
					return err
				}
			}

			hash, err := HashFor(pin, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", 10, "bcrypt cost")
	return cmd
}

// HashFor validates the PIN shape before hashing it.
func HashFor(pin string, cost int) (string, error) {
	pin = strings.TrimSpace(pin)
	if len(pin) != 4 || strings.Trim(pin, "0123456789") != "" {
		return "", errors.New("pin must be exactly 4 digits")
	}
	return infraauth.HashPIN(pin, cost)
}

func readPIN(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "PIN: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read pin: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read pin: %w", err)
	}
	return line, nil
}
