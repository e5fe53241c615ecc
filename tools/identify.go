package tools

import (
	"fmt"
	"io"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/parser/dispatch"
	"github.com/spf13/cobra"
)

type Identify struct {
	inputs
}

func CmdIdentify() *cobra.Command {
	t := Identify{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "identify FILE...",
		Short:   "Identify the content type of files",
		Long: `Identify the content type of files.
One line "FILE : TYPE" is printed per file.`,
		Args:    cobra.MinimumNArgs(1),
		Example: `  chanseg identify -c parsers.yml mail.eml page.html`,
		Run:     t.run,
	}

	inputFlags(cmd, &t.inputs)
	return cmd
}

func (t *Identify) String() string {
	return "identify"
}

func (t *Identify) run(cmd *cobra.Command, args []string) {
	if err := t.execute(cmd.OutOrStdout(), args); err != nil {
		log.Fatal(t, "Unable to identify input", "err", err)
	}
}

func (t *Identify) execute(w io.Writer, names []string) error {
	cfg, err := t.loadConfig()
	if err != nil {
		return err
	}
	factory := dispatch.NewFactory(cfg, dispatch.NewRegistry())

	return t.each(names, func(name string, f channel.Factory) error {
		c := f.Create()
		defer c.Close()
		if _, err := c.Size(); err != nil {
			return fmt.Errorf("unable to open %s: %w", name, err)
		}
		fmt.Fprintf(w, "%s : %s\n", name, factory.Identify(c))
		return nil
	})
}
