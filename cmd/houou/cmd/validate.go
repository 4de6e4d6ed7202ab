package cmd

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Проверка скачанных логов",
	Long: `Распаковывает и разбирает каждый скачанный лог на раздачи.
Битые логи возвращаются в очередь на скачивание.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{requiresDB: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := application.Validate(cmd.Context())
		if result != nil {
			printDone("Проверка завершена")
			printCount("Корректных", result.Valid)
			printFailed("Сброшено", result.Failed)
		}
		return err
	},
}
