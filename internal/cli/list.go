package cli

import (
	"fmt"

	"apple-quiz/internal/infra/memory"
	"github.com/spf13/cobra"
)

// NewListCmd prints the built-in quizzes.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, quiz := range memory.NewBuiltinQuizLoader().List() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d questions\n", quiz.ID, quiz.Title, len(quiz.Items)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
