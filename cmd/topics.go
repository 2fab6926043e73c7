package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizhive/quizgen/internal/templategen"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics the template bank covers",
	Long: "List topics with dedicated template material. Other topics still work:\n" +
		"the AI path handles any topic, and the template fallback uses a generic\n" +
		"entry for topics it does not know.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range templategen.NewGenerator().Topics() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}
