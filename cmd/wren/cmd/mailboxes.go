package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenmail/wren/internal/mail"
)

var mailboxesCmd = &cobra.Command{
	Use:   "mailboxes",
	Short: "List the mailboxes of the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := mail.Open(cfg.Mail.StorageDir, cfg.Mail.Profile)
		if err != nil {
			return err
		}
		defer reader.Close()

		for _, path := range reader.MailboxPaths() {
			var size int64
			if info, err := os.Stat(path); err == nil {
				size = info.Size()
			}
			fmt.Printf("%10d  %s\n", size, path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mailboxesCmd)
}
