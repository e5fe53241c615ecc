package tools

import "github.com/spf13/cobra"

// Cmds returns the commands of the tools group.
func Cmds() []*cobra.Command {
	return []*cobra.Command{
		CmdIdentify(),
		CmdSplit(),
		CmdImport(),
	}
}

// inputFlags registers the flags selecting where inputs are read from.
func inputFlags(cmd *cobra.Command, in *inputs) {
	cmd.Flags().StringVarP(&in.config, "config", "c", "", "parser configuration file")
	cmd.Flags().BoolVar(&in.mmap, "mmap", false, "memory map input files")
	cmd.Flags().StringVar(&in.store, "store", "", "read inputs from the store in this directory")
}
