package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/syllabus"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the signed-in user's statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		ns, _ := cmd.Flags().GetString("namespace")
		repo := accountRepo(s, ns)

		u, err := repo.ActiveUser(ctx)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if u == nil {
			fmt.Println("Nobody is signed in. Run az104 to log in.")
			return nil
		}
		st, err := repo.LoadStats(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		last, err := repo.LoadLastDaily(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("load daily date: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"user":      u,
				"stats":     st,
				"lastDaily": last.String(),
			})
		}

		fmt.Printf("%s <%s>\n", u.Name, u.Email)
		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("Answered:   %d\n", st.TotalAnswered)
		fmt.Printf("Correct:    %d\n", st.TotalCorrect)
		fmt.Printf("Accuracy:   %s\n", accuracy(st.Accuracy()))
		if last.IsZero() {
			fmt.Println("Last daily: never")
		} else {
			fmt.Printf("Last daily: %s\n", last)
		}

		fmt.Println()
		fmt.Printf("%-44s  %8s  %8s  %8s\n", "Domain", "Answered", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 74))
		for _, d := range syllabus.Domains() {
			ts := st.TopicStats[d.Name]
			fmt.Printf("%-44s  %8d  %8d  %8s\n", d.Name, ts.TotalAnswered, ts.TotalCorrect, accuracy(ts.Accuracy()))
		}
		return nil
	},
}

func accuracy(pct int, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d%% (%s)", pct, stats.BandFor(pct))
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print as JSON")
}
