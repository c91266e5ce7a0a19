package cli

import (
	"fmt"
	"strings"

	"piquant-gui/internal/field"
	"piquant-gui/internal/task"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the analysis tasks and the inputs each one uses",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	styled := isTerminal(out)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TOKEN", "TASK", "REQUIRES", "ARGUMENTS")
	if styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TitleStyle.Padding(0, 1)
			}
			if col == 0 {
				return CmdStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	for _, tk := range task.All() {
		t = t.Row(tk.Token(), tk.Title(), slotNames(tk.ReadySlots()), slotNames(tk.ArgSlots()))
	}

	_, err := fmt.Fprintln(out, t.Render())
	return err
}

func slotNames(slots []field.Slot) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}
