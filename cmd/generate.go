package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizhive/quizgen/internal/llm"
	"github.com/quizhive/quizgen/internal/quiz"
	"github.com/quizhive/quizgen/internal/quizgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate quiz questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		difficultyArg, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		keywords, _ := cmd.Flags().GetStringSlice("keywords")
		asJSON, _ := cmd.Flags().GetBool("json")

		difficulty, err := quiz.ParseDifficulty(difficultyArg)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var sink llm.EventSink
		if s := openStore(cmd); s != nil {
			defer s.Close()
			sink = s
		}

		svc := quizgen.New(cfg, sink)
		questions, err := svc.Generate(cmd.Context(), quiz.Request{
			Topic:      topic,
			Difficulty: difficulty,
			Count:      count,
			Keywords:   keywords,
		})
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(questions)
		}

		printQuestions(cmd, questions, svc.Status())
		return nil
	},
}

func printQuestions(cmd *cobra.Command, questions []quiz.Question, st quizgen.Status) {
	out := cmd.OutOrStdout()

	source := "templates"
	if len(questions) > 0 && questions[0].Source == quiz.SourceAI {
		source = fmt.Sprintf("model (%s strategy)", st.ActiveStrategy)
	}
	fmt.Fprintf(out, "Generated %d question(s) from %s\n", len(questions), source)

	for i, q := range questions {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%d. [%s/%s] %s\n", i+1, q.Difficulty, q.Kind, q.Prompt)
		for j, c := range q.Choices {
			marker := " "
			if c == q.Answer {
				marker = "*"
			}
			fmt.Fprintf(out, "   %s %c) %s\n", marker, 'A'+j, c)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "   %s\n", strings.TrimSpace(q.Explanation))
		}
	}
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Topic to generate questions about (required)")
	generateCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty: easy, medium, hard")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions")
	generateCmd.Flags().StringSliceP("keywords", "k", nil, "Keywords to steer questions toward")
	generateCmd.Flags().Bool("json", false, "Output questions as JSON")
	generateCmd.MarkFlagRequired("topic")
}
