package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the signed-in user's statistics and daily date",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

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
			fmt.Println("Nobody is signed in; nothing to reset.")
			return nil
		}

		if !yes {
			fmt.Printf("Delete all statistics for %s <%s>? [y/N] ", u.Name, u.Email)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := repo.Reset(ctx, u.ID); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Printf("Statistics for %s cleared.\n", u.Name)
		return nil
	},
}

func accountRepo(s *store.Store, ns string) *account.Repo {
	if ns == "" {
		ns = account.DefaultNamespace
	}
	return account.NewRepo(s.KV(), ns)
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
