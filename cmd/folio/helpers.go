package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// confirmDelete prompts for a yes/no answer on the command's streams.
// Refuses to prompt when stdin is not a terminal so scripted invocations
// fail fast instead of hanging; those should pass --yes.
func confirmDelete(cmd *cobra.Command, message string) (bool, error) {
	if file, ok := cmd.InOrStdin().(*os.File); ok {
		if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
			return false, errors.New("stdin is not a terminal; pass --yes to confirm")
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", message)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
