package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"atelier/internal/domain/content"
	"atelier/internal/ingest"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load every collection and report content problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		var totalWarns int
		for _, col := range content.Collections {
			dir := cfg.Content.Dir(col)
			records, warns, err := ingest.Load(col, dir)
			if err != nil {
				return fmt.Errorf("ingest %s: %w", col, err)
			}
			for _, w := range warns {
				logger.Warn("content problem",
					zap.String("collection", string(col)),
					zap.String("path", w.Path),
					zap.String("msg", w.Msg))
			}
			totalWarns += len(warns)
			fmt.Printf("%-8s %4d records, %d warnings\n", col, len(records), len(warns))
		}
		if totalWarns > 0 {
			fmt.Printf("%d warnings total\n", totalWarns)
		}
		return nil
	},
}
