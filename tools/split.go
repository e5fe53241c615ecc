package tools

import (
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash"
	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/parser"
	"github.com/chanseg/chanseg/std/parser/dispatch"
	"github.com/chanseg/chanseg/std/parser/producer"
	"github.com/chanseg/chanseg/std/utils/toolutils"
	"github.com/spf13/cobra"
)

type Split struct {
	inputs
	forms []string
	quiet bool
}

func CmdSplit() *cobra.Command {
	t := Split{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "split FILE...",
		Short:   "Split files into sessions",
		Long: `Split files into sessions with the parser configured for their content.
One line is printed per session with the section sizes and a digest of
the session data, followed by totals.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  chanseg split -c parsers.yml records.txt
  chanseg split --store ./db records.txt`,
		Run: t.run,
	}

	inputFlags(cmd, &t.inputs)
	cmd.Flags().StringSliceVar(&t.forms, "form", nil, "initial forms of every session")
	cmd.Flags().BoolVarP(&t.quiet, "quiet", "q", false, "only print totals")
	return cmd
}

func (t *Split) String() string {
	return "split"
}

func (t *Split) run(cmd *cobra.Command, args []string) {
	if err := t.execute(cmd.OutOrStdout(), args); err != nil {
		log.Fatal(t, "Unable to split input", "err", err)
	}
}

func (t *Split) execute(w io.Writer, names []string) error {
	cfg, err := t.loadConfig()
	if err != nil {
		return err
	}
	factory := dispatch.NewFactory(cfg, dispatch.NewDefaultRegistry(cfg))

	sessions, bytes := 0, 0
	err = t.each(names, func(name string, f channel.Factory) error {
		c := f.Create()
		defer c.Close()

		p := factory.MakeSessionParser(c)
		if p == nil {
			return fmt.Errorf("no parser for %s", name)
		}
		if closer, ok := p.(io.Closer); ok {
			defer closer.Close()
		}

		pr := producer.New(p, t.forms...)
		for {
			payload, err := pr.NextPayload(fmt.Sprintf("%s-%d", name, pr.Sessions()))
			if errors.Is(err, parser.ErrEndOfInput) {
				break
			}
			if err != nil {
				return fmt.Errorf("unable to split %s: %w", name, err)
			}

			sessions++
			bytes += len(payload.Data)
			if !t.quiet {
				fmt.Fprintf(w, "%s : %s form=%s header=%d data=%d footer=%d xxhash=%016x\n",
					name, payload.Name, payload.CurrentForm(),
					len(payload.Header), len(payload.Data), len(payload.Footer),
					xxhash.Sum64(payload.Data))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p := toolutils.StatusPrinter{File: w, Padding: 10}
	p.Print("inputs", len(names))
	p.Print("sessions", sessions)
	p.Print("bytes", bytes)
	return nil
}
