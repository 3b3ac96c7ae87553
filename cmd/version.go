package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/az104/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("az104", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		switch {
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("Development build; skipping the release check.")
			return nil
		case err != nil:
			return fmt.Errorf("check for updates: %w", err)
		case res.UpdateAvailable:
			fmt.Printf("A newer release is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
		default:
			fmt.Println("You are running the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Compare against the latest GitHub release")
}
