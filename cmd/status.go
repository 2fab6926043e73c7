package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizhive/quizgen/internal/llm"
	"github.com/quizhive/quizgen/internal/quizgen"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show model availability and the active connection strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var sink llm.EventSink
		if s := openStore(cmd); s != nil {
			defer s.Close()
			sink = s
		}

		st := quizgen.New(cfg, sink).Initialize(cmd.Context())

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		out := cmd.OutOrStdout()
		if st.ModelsLoaded {
			fmt.Fprintf(out, "Models loaded:    yes\n")
			fmt.Fprintf(out, "Active strategy:  %s\n", st.ActiveStrategy)
		} else {
			fmt.Fprintf(out, "Models loaded:    no\n")
			fmt.Fprintf(out, "Generation will use the template bank.\n")
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Output status as JSON")
}
