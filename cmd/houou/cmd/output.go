package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hououlogs/internal/domain/input"
	"hououlogs/internal/model"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed)
	keyColor  = color.New(color.FgCyan)
)

func printDone(title string) {
	okColor.Printf("✅ %s\n", title)
}

func printCount(name string, n int) {
	keyColor.Printf("%-14s", name+":")
	fmt.Printf(" %d\n", n)
}

func printFailed(name string, n int) {
	keyColor.Printf("%-14s", name+":")
	if n > 0 {
		failColor.Printf(" %d\n", n)
		return
	}
	fmt.Printf(" %d\n", n)
}

// buildFilter проверяет заданные флаги выборки и собирает фильтр
func buildFilter(cmd *cobra.Command, players int, length string, limit, offset int) (model.Filter, error) {
	var filter model.Filter
	flags := cmd.Flags()

	if flags.Changed("players") {
		if err := input.ValidatePlayers(players); err != nil {
			return filter, err
		}
		filter.Players = players
	}
	if flags.Changed("length") {
		tonpu, err := input.ParseLength(length)
		if err != nil {
			return filter, err
		}
		filter.Tonpu = &tonpu
	}
	if flags.Changed("limit") {
		if err := input.ValidateLimit(limit); err != nil {
			return filter, err
		}
		filter.Limit = limit
	}
	if err := input.ValidateOffset(offset); err != nil {
		return filter, err
	}
	filter.Offset = offset

	return filter, nil
}
