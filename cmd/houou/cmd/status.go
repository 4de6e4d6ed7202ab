package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Состояние базы",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{requiresDB: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := application.Status(cmd.Context())
		if err != nil {
			return err
		}

		printCount("Всего", stats.Total)
		printCount("В очереди", stats.Discovered)
		printCount("Скачано", stats.Downloaded)
		printFailed("Ошибок", stats.Errored)
		printCount("Файлов", stats.Files)
		return nil
	},
}
