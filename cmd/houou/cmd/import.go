package cmd

import (
	"github.com/spf13/cobra"
)

var anchors bool

var importCmd = &cobra.Command{
	Use:   "import ARCHIVE",
	Short: "Импорт идентификаторов из годового zip-архива",
	Long: `Читает файлы scc*.html(.gz) годового архива tenhou (scrawYYYY.zip)
и добавляет найденные логи в базу. Уже известные логи не изменяются.

Для архивов 2006-2008 годов со ссылками без времени используйте --anchors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := application.Import(cmd.Context(), args[0], anchors)
		if err != nil {
			return err
		}

		printDone("Импорт завершен")
		printCount("Файлов", result.Files)
		printCount("Логов", result.Logs)
		printCount("Новых", result.Inserted)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&anchors, "anchors", false, "старый формат: только ссылки, дата с точностью до часа")
}
