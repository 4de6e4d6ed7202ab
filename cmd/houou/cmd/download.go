package cmd

import (
	"github.com/spf13/cobra"
)

var (
	downloadPlayers int
	downloadLength  string
	downloadLimit   int
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Скачивание логов из очереди",
	Long: `Скачивает логи, которые еще не загружались, в порядке id.
Результат каждого лога сохраняется сразу, прерванный запуск можно продолжить.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildFilter(cmd, downloadPlayers, downloadLength, downloadLimit, 0)
		if err != nil {
			return err
		}

		result, err := application.Download(cmd.Context(), filter)
		if result != nil {
			printDone("Скачивание завершено")
			printCount("Скачано", result.Downloaded)
			printFailed("Ошибок", result.Failed)
		}
		return err
	},
}

func init() {
	downloadCmd.Flags().IntVarP(&downloadPlayers, "players", "p", 0, "количество игроков: 4 или 3")
	downloadCmd.Flags().StringVarP(&downloadLength, "length", "l", "", "длина игры: t (тонпусен) или h (ханчан)")
	downloadCmd.Flags().IntVar(&downloadLimit, "limit", 0, "максимум логов за запуск")
}
