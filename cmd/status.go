package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/vcprompt/internal/domain"
)

var jsonOutput bool

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show repository status",
	Long: `Display the full status of the repository enclosing the working directory.
With --json the status is printed as JSON, or null outside a repository.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := statusService.Status(cmd.Context(), workDir)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputStatusJSON(cmd.OutOrStdout(), status)
		}

		printStatusText(cmd.OutOrStdout(), status)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(w io.Writer, status *domain.Status) error {
	jsonData, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

// printStatusText prints the status in plain text format
func printStatusText(w io.Writer, status *domain.Status) {
	if status == nil {
		fmt.Fprintln(w, "No repository found.")
		return
	}

	fmt.Fprintf(w, "%s %s repository\n", status.Symbol, status.Name)
	fmt.Fprintf(w, "   Branch:     %s\n", status.Branch)
	if status.Commit != "" {
		fmt.Fprintf(w, "   Commit:     %s\n", status.Commit)
	}
	if status.HasOperations() {
		fmt.Fprintf(w, "   Operations: %s\n", strings.Join(status.Operations, ", "))
	}
	if status.Ahead > 0 || status.Behind > 0 {
		fmt.Fprintf(w, "   Ahead:      %d\n", status.Ahead)
		fmt.Fprintf(w, "   Behind:     %d\n", status.Behind)
	}

	if status.IsClean() {
		fmt.Fprintln(w, "   Working tree clean")
		return
	}
	fmt.Fprintf(w, "   Staged:     %d\n", status.Staged)
	fmt.Fprintf(w, "   Changed:    %d\n", status.Changed)
	fmt.Fprintf(w, "   Untracked:  %d\n", status.Untracked)
	fmt.Fprintf(w, "   Conflicts:  %d\n", status.Conflicts)
}
