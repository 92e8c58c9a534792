package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnakagawa/kakei/internal/auth"
)

var hashPINCmd = &cobra.Command{
	Use:   "hash-pin <pin>",
	Short: "Generate the bcrypt hash of a login PIN",
	Long: `hash-pin prints the bcrypt hash of the given PIN. Put the hash
in the pin_hash config field (or the KAKEI_PIN_HASH env var); the PIN
itself is never stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pin := args[0]
		if len(pin) < 4 {
			fmt.Println("warning: PINs shorter than 4 characters are easy to guess")
		}

		hash, err := auth.HashPIN(pin)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		fmt.Println()
		fmt.Println("Add to kakei.yaml:")
		fmt.Printf("pin_hash: %q\n", hash)
		return nil
	},
}
