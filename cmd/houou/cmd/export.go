package cmd

import (
	"github.com/spf13/cobra"
)

var (
	exportPlayers int
	exportLength  string
	exportLimit   int
	exportOffset  int
)

var exportCmd = &cobra.Command{
	Use:         "export DIR",
	Short:       "Выгрузка скачанных логов в XML",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{requiresDB: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildFilter(cmd, exportPlayers, exportLength, exportLimit, exportOffset)
		if err != nil {
			return err
		}

		result, err := application.Export(cmd.Context(), args[0], filter)
		if result != nil {
			printDone("Выгрузка завершена")
			printCount("Выгружено", result.Exported)
			printFailed("Ошибок", result.Failed)
		}
		return err
	},
}

func init() {
	exportCmd.Flags().IntVarP(&exportPlayers, "players", "p", 0, "количество игроков: 4 или 3")
	exportCmd.Flags().StringVarP(&exportLength, "length", "l", "", "длина игры: t (тонпусен) или h (ханчан)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "максимум логов")
	exportCmd.Flags().IntVar(&exportOffset, "offset", 0, "пропустить первые N логов")
}
