package cmd

import (
	"fmt"
	"os"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/replay"
	"github.com/spf13/cobra"
)

var (
	exportOut     string
	exportFixture string
)

var exportCmd = &cobra.Command{
	Use:   "export-catalog",
	Short: "Write the active catalog as a YAML pack, or bake a replay fixture baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Fixture mode: regenerate and fill in expectations.
		if exportFixture != "" {
			fixture, err := replay.LoadFixture(exportFixture)
			if err != nil {
				return err
			}
			data, err := replay.ExportFixture(fixture, cfg.Generator)
			if err != nil {
				return err
			}
			return writeOut(data)
		}

		cat, err := catalog.BuiltinWithPack(cfg.CatalogPack)
		if err != nil {
			return err
		}
		data, err := cat.MarshalPack()
		if err != nil {
			return err
		}
		return writeOut(data)
	},
}

func writeOut(data []byte) error {
	if exportOut == "" {
		fmt.Print(string(data))
		return nil
	}
	return os.WriteFile(exportOut, data, 0o644)
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFixture, "fixture", "", "fixture JSON to bake expectations into")
	rootCmd.AddCommand(exportCmd)
}
