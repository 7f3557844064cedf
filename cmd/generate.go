package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"lesson_quiz_backend/internal/config"
	"lesson_quiz_backend/internal/service"
	"lesson_quiz_backend/internal/util"
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Simplify a lesson file and print generated questions as JSON",
	Long:  "Runs the same pipeline as POST /api/generate without saving a submission. Reads stdin when --file is - or omitted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		num, _ := cmd.Flags().GetInt("num")
		html, _ := cmd.Flags().GetBool("html")

		content, err := readLesson(cmd.InOrStdin(), file)
		if err != nil {
			return err
		}

		configDir, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		format := util.FormatText
		if html {
			format = util.FormatHTML
		}

		svc := service.NewLessonService(nil, &cfg.Generation, nil)
		result, err := svc.Generate(cmd.Context(), service.GenerateInput{
			Content:      content,
			NumQuestions: service.ClampQuestionCount(num),
			Format:       format,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	},
}

func init() {
	generateCmd.Flags().StringP("file", "f", "-", "Lesson text file, - for stdin")
	generateCmd.Flags().IntP("num", "n", util.DefaultQuestionCount, "Number of questions (1-20)")
	generateCmd.Flags().Bool("html", false, "Treat the input as an HTML page and extract its readable text")
}

func readLesson(stdin io.Reader, file string) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read lesson file: %w", err)
	}
	return string(data), nil
}
