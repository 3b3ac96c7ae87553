package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/az104/internal/syllabus"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the AZ-104 domains and sub-topics",
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range syllabus.Domains() {
			fmt.Println(d.Name)
			for i, sub := range d.SubTopics {
				branch := "├─"
				if i == len(d.SubTopics)-1 {
					branch = "└─"
				}
				fmt.Printf("  %s %s\n", branch, sub)
			}
		}
	},
}
