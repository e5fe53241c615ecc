package tools

import (
	"fmt"
	"io"
	"os"

	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/object/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type Import struct {
	store string
}

func CmdImport() *cobra.Command {
	t := Import{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "import FILE...",
		Short:   "Copy files into a store",
		Long: `Copy files into a store, keyed by the file path as given.
The other tools read from the store with --store.`,
		Args:    cobra.MinimumNArgs(1),
		Example: `  chanseg import --store ./db records.txt`,
		Run:     t.run,
	}

	cmd.Flags().StringVar(&t.store, "store", "", "store directory")
	cmd.MarkFlagRequired("store")
	return cmd
}

func (t *Import) String() string {
	return "import"
}

func (t *Import) run(cmd *cobra.Command, args []string) {
	if err := t.execute(cmd.OutOrStdout(), args); err != nil {
		log.Fatal(t, "Unable to import files", "err", err)
	}
}

func (t *Import) execute(w io.Writer, names []string) error {
	store, err := storage.NewBadgerStore(t.store)
	if err != nil {
		return fmt.Errorf("unable to open store %s: %w", t.store, err)
	}
	defer store.Close()

	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if err := store.Put(name, data); err != nil {
			return fmt.Errorf("unable to store %s: %w", name, err)
		}
		fmt.Fprintf(w, "%s : %s\n", name, humanize.IBytes(uint64(len(data))))
	}
	return nil
}
