package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"golang.org/x/term"

	"hououlogs/internal/app"
	"hououlogs/internal/config"
	"hououlogs/internal/domain/input"
	"hououlogs/internal/utils/logger"
)

// requiresDB команда только читает базу и не должна создавать новую
const requiresDB = "requires-db"

var (
	cfgFile string
	dbPath  string
	debug   bool

	cfg         *config.Config
	log         *slog.Logger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "houou",
	Short: "houou - локальная база логов игр 鳳凰卓 tenhou.net",
	Long: `houou собирает идентификаторы логов игр 鳳凰卓 tenhou.net в локальную
базу SQLite, скачивает сами логи, проверяет их целостность и выгружает в XML.

Источники идентификаторов: годовые zip-архивы (import), каталог сервера
за последние 7 дней или за все годы (fetch) и списки якуманов (yakuman).`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

// Execute запускает CLI и возвращает код выхода
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if application != nil {
			_ = application.Close()
		}
		if errors.Is(err, input.ErrInvalidInput) {
			fmt.Fprintf(os.Stderr, "Неверные аргументы: %v\n", err)
			return 2
		}
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		return 1
	}
	return 0
}

// needsApp false для служебных команд cobra: им не нужны ни конфигурация, ни база
func needsApp(cmd *cobra.Command) bool {
	if cmd.RunE == nil {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func setupApp(cmd *cobra.Command, _ []string) error {
	if !needsApp(cmd) {
		return nil
	}

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	env := cfg.Env
	if debug && cfg.IsProd() {
		env = config.EnvDev
	}

	log = logger.New(env).With("run_id", uuid.NewString(), "command", cmd.Name())

	if cmd.Annotations[requiresDB] != "" {
		if err := input.ValidateDBPath(cfg.DBPath); err != nil {
			return err
		}
	}

	application, err = app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if application == nil {
		return nil
	}
	err := application.Close()
	application = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "файл .env с настройками")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "путь к базе SQLite (по умолчанию DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный вывод")

	rootCmd.AddCommand(importCmd, fetchCmd, yakumanCmd, downloadCmd, validateCmd, exportCmd, statusCmd)
}
