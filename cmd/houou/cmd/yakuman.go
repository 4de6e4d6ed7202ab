package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hououlogs/internal/domain/input"
)

var yakumanCmd = &cobra.Command{
	Use:   "yakuman YEAR MONTH",
	Short: "Импорт логов из списка якуманов за месяц",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: invalid year: %s", input.ErrInvalidInput, args[0])
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: invalid month: %s", input.ErrInvalidInput, args[1])
		}

		result, err := application.Yakuman(cmd.Context(), year, month)
		if err != nil {
			return err
		}

		printDone(fmt.Sprintf("Список якуманов %04d/%02d импортирован", year, month))
		printCount("Логов", result.Logs)
		printCount("Новых", result.Inserted)
		return nil
	},
}
