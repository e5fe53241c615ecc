package cmd

import (
	"github.com/chanseg/chanseg/std/utils"
	"github.com/chanseg/chanseg/tools"
	"github.com/spf13/cobra"
)

var CmdChanseg = &cobra.Command{
	Use:   "chanseg",
	Short: "Channel segmentation tools",
	Long: `Channel segmentation tools

Identify the content of inputs and split them into sessions with the
parsers configured for that content.`,
	Version: utils.Version,
}

func init() {
	cobra.EnableCommandSorting = false
	CmdChanseg.Root().CompletionOptions.HiddenDefaultCmd = true
	CmdChanseg.PersistentFlags().BoolP("help", "h", false, "Print usage")
	CmdChanseg.PersistentFlags().Lookup("help").Hidden = true

	CmdChanseg.AddGroup(&cobra.Group{ID: "tools", Title: "Tools"})
	CmdChanseg.AddCommand(tools.Cmds()...)
}
