package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check question series files for schema and content errors",
	Long: "Check question series files for schema and content errors.\n" +
		"Without --dir the built-in series are checked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}
			fmt.Printf("built-in content OK: %d games in %d topics\n", cat.Len(), len(cat.Topics()))
			return nil
		}

		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		n, err := catalog.ValidateFS(os.DirFS(dir))
		if err != nil {
			return fmt.Errorf("%s:\n%w", dir, err)
		}
		fmt.Printf("%s OK: %d games\n", dir, n)
		return nil
	},
}

func init() {
	validateCmd.Flags().String("dir", "", "Directory of series files to check")
}
