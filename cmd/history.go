package cmd

import (
	"encoding/json"
	"fmt"

	resultrender "github.com/bnema/interview-prep-cli/internal/adapters/render/result"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/spf13/cobra"
)

type historyEntryJSON struct {
	SessionID     string   `json:"session_id"`
	Role          string   `json:"role"`
	Company       string   `json:"company"`
	Mode          string   `json:"mode"`
	Rounds        int      `json:"rounds"`
	AverageScore  float64  `json:"average_score"`
	FitPercentage int      `json:"fit_percentage"`
	Passed        *bool    `json:"passed,omitempty"`
	Method        string   `json:"scoring_method"`
	Strengths     []string `json:"strengths,omitempty"`
	WeakAreas     []string `json:"weak_areas,omitempty"`
	CompletedAt   string   `json:"completed_at"`
}

func newHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "history",
		Short:       "List finished interviews, newest first",
		Args:        cobra.NoArgs,
		Annotations: onLocalRoute(routeHistory),
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := app.interviews.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeHistoryJSON(cmd, results)
			}

			rendered, err := app.renderHistory(results, resultrender.RenderOptions{
				MarkdownStyle: markdownStyle(cmd.OutOrStdout()),
				Now:           app.now(),
			})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of interviews to list (0 lists all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeHistoryJSON(cmd *cobra.Command, results []domain.Result) error {
	entries := make([]historyEntryJSON, 0, len(results))
	for _, r := range results {
		entries = append(entries, historyEntryJSON{
			SessionID:     r.SessionID,
			Role:          r.Role,
			Company:       r.Company,
			Mode:          string(r.Mode),
			Rounds:        r.RoundsPlayed,
			AverageScore:  r.AverageScore,
			FitPercentage: r.FitPercentage,
			Passed:        r.Passed,
			Method:        string(r.Method),
			Strengths:     r.Strengths,
			WeakAreas:     r.WeakAreas,
			CompletedAt:   r.CompletedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
