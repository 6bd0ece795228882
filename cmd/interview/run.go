package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"alfredoptarigan/prepio/internal/client"
	"alfredoptarigan/prepio/internal/config"
	"alfredoptarigan/prepio/internal/interview"
	"alfredoptarigan/prepio/internal/models"
	"alfredoptarigan/prepio/internal/services"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a mock interview for a PDF, DOCX or TXT résumé",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionType, _ := cmd.Flags().GetString("type")
		count, _ := cmd.Flags().GetInt("count")
		server, _ := cmd.Flags().GetString("server")
		local, _ := cmd.Flags().GetBool("local")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		req, err := newGenerationRequest(questionType, count)
		if err != nil {
			return err
		}

		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		backend, err := newBackend(cmd.Context(), server, local, timeout)
		if err != nil {
			return err
		}

		return runInterview(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), interview.NewSession(backend), doc, req)
	},
}

func init() {
	runCmd.Flags().StringP("type", "t", "", "Question category, e.g. Technical or Behavioral (server default when empty)")
	runCmd.Flags().IntP("count", "n", 0, "Number of questions (server default when zero)")
	runCmd.Flags().String("server", "http://localhost:3000", "Interview API base URL")
	runCmd.Flags().Bool("local", false, "Run the pipeline in-process using the environment configuration")
	runCmd.Flags().Duration("timeout", 2*time.Minute, "HTTP timeout for each API call")
}

// newGenerationRequest rejects a negative count up front so both backends
// treat it the same way. Zero leaves the default to the backend.
func newGenerationRequest(questionType string, count int) (models.GenerationRequest, error) {
	if count < 0 {
		return models.GenerationRequest{}, fmt.Errorf("--count must be a positive integer, got %d", count)
	}
	return models.GenerationRequest{Category: strings.TrimSpace(questionType), QuestionCount: count}, nil
}

// newBackend picks the HTTP API or the in-process pipeline.
func newBackend(ctx context.Context, server string, local bool, timeout time.Duration) (interview.Backend, error) {
	if !local {
		return client.New(server, client.WithHTTPClient(&http.Client{Timeout: timeout})), nil
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	generationClient, err := services.NewGenerationClient(ctx, cfg.Generation)
	if err != nil {
		return nil, err
	}

	return services.NewInterviewService(services.NewDocumentExtractor(), generationClient, services.InterviewOptions{
		DefaultQuestionType:  cfg.Interview.DefaultQuestionType,
		DefaultQuestionCount: cfg.Interview.DefaultQuestionCount,
		StrictQuestionCount:  cfg.Interview.StrictQuestionCount,
	}), nil
}

// runInterview drives the session from a line-oriented input. An answer ends
// at the first blank line. A blank answer after a failed submission resends
// the kept draft.
func runInterview(ctx context.Context, in io.Reader, out io.Writer, session *interview.Session, doc *models.UploadedDocument, req models.GenerationRequest) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, dimStyle.Render("Generating questions..."))
	if err := session.Start(ctx, doc, req); err != nil {
		fmt.Fprintln(out, errorStyle.Render("Error: "+userMessage(err)))
		return err
	}

	total := len(session.Questions())
	for session.Phase() != interview.PhaseIdle {
		question, _ := session.CurrentQuestion()
		fmt.Fprintf(out, "\n%s\n%s\n", dimStyle.Render(fmt.Sprintf("Question %d of %d", session.CurrentIndex()+1, total)), questionStyle.Render(question))
		fmt.Fprintln(out, dimStyle.Render("Type your answer, then an empty line to submit."))

		answer, ok := readAnswer(scanner)
		if !ok {
			fmt.Fprintln(out, "\nInterview ended.")
			return scanner.Err()
		}
		if answer == "" {
			answer = session.Draft()
		}
		if answer == "" {
			fmt.Fprintln(out, errorStyle.Render("Please enter an answer."))
			continue
		}

		fmt.Fprintln(out, dimStyle.Render("Getting feedback..."))
		feedback, err := session.SubmitAnswer(ctx, answer)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("Error: "+userMessage(err)))
			fmt.Fprintln(out, dimStyle.Render("Your answer was kept. Press Enter to resend it or type a new one."))
			continue
		}

		fmt.Fprintf(out, "\n%s\n", renderFeedback(feedback))

		if session.IsLastQuestion() {
			fmt.Fprintln(out, "\n"+questionStyle.Render("Interview complete. Well done!"))
		} else {
			fmt.Fprintln(out, dimStyle.Render("\nPress Enter for the next question."))
			if !scanner.Scan() {
				fmt.Fprintln(out, "\nInterview ended.")
				return scanner.Err()
			}
		}

		if err := session.Advance(); err != nil {
			return err
		}
	}

	return nil
}

func readAnswer(scanner *bufio.Scanner) (string, bool) {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n"), true
	}
	return "", false
}

// userMessage prefers the server's message and hides internal detail for
// in-process failures.
func userMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, interview.ErrNoQuestions) {
		return "No questions were generated. Please try again."
	}
	return services.UserMessage(err, "An internal error occurred.")
}
