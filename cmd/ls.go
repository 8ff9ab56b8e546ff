package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all denbox containers",
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	summaries, err := reconciler().List(cmd.Context())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		logInfo("No denbox containers. Run 'denbox' inside a project to create one")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tCONTAINER\tSTATE\tIMAGE")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Project, s.Name, formatState(s.State), s.Image)
	}
	return w.Flush()
}
