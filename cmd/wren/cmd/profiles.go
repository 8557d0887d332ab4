package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wrenmail/wren/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profiles found in the mail storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := profile.LoadAll(filepath.Join(cfg.Mail.StorageDir, "profiles.ini"))
		if err != nil {
			return err
		}
		for _, p := range profiles {
			marker := " "
			if p.Name == cfg.Mail.Profile {
				marker = "*"
			}
			fmt.Printf("%s %-20s %s\n", marker, p.Name, p.Dir(cfg.Mail.StorageDir))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
