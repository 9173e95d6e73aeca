package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/config"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different config profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			picked, err := pickProfile()
			if err != nil {
				return err
			}
			label = picked
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Switched to:", label)
		fmt.Fprintln(cmd.OutOrStdout(), profileFlagHint)
		return nil
	},
}

var profileTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}",
	Active:   "▸ {{ .Label | cyan }}{{ if .Active }} (active){{ end }}",
	Inactive: "  {{ .Label }}{{ if .Active }} (active){{ end }}",
	Selected: "✔ {{ .Label | green }}",
	Details: `
primary: {{ .PrimaryURL }}
shape:   {{ .ChapterShape }}
file:    {{ .Path }}`,
}

func pickProfile() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("no configs available, run `manhuafast config init`")
	}

	prompt := promptui.Select{
		Label:     "Select config",
		Items:     list,
		Templates: profileTemplates,
		Searcher: func(input string, i int) bool {
			return strings.Contains(strings.ToLower(list[i].Label), strings.ToLower(input))
		},
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}
	return list[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
