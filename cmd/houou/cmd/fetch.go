package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hououlogs/internal/domain/index"
)

var fetchArchive bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Синхронизация с каталогом сервера",
	Long: `Загружает каталог файлов tenhou и перечитывает только файлы,
размер которых изменился с прошлого запуска.

Без --archive читается каталог последних 7 дней; такой запуск разрешен
не чаще MIN_FETCH_INTERVAL (по умолчанию 20 минут).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := application.Fetch(cmd.Context(), fetchArchive)
		if errors.Is(err, index.ErrTooSoon) {
			fmt.Printf("Слишком рано: с прошлой синхронизации прошло меньше %v\n", cfg.MinFetchInterval)
			return nil
		}
		if err != nil {
			return err
		}

		printDone("Синхронизация завершена")
		printCount("Файлов", result.Listed)
		printCount("Изменилось", result.Changed)
		printCount("Логов", result.Logs)
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchArchive, "archive", false, "каталог всех лет вместо последних 7 дней")
}
