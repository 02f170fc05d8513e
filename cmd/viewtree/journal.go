package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	vterrors "github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/journal"
)

func journalCmd(c *cli) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Browse recorded event sessions",
		Long: `Inspect the bbolt event journal written by 'demo --journal' and
'serve --journal'.

Examples:
  viewtree journal list
  viewtree journal show 3
  viewtree journal rm 3`,
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Journal file (default from config)")

	open := func() (*journal.Journal, error) {
		p := path
		if p == "" {
			p = c.cfg.JournalPath()
		}
		if _, err := os.Stat(p); err != nil {
			return nil, vterrors.New(vterrors.CodeJournalOpen).WithDetail(p).Wrap(err)
		}
		return journal.Open(p, journal.WithLogger(c.logger))
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List sessions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				j, err := open()
				if err != nil {
					return err
				}
				defer j.Close()
				return listSessions(j)
			},
		},
		&cobra.Command{
			Use:   "show <session>",
			Short: "Print the events of a session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseSessionID(args[0])
				if err != nil {
					return err
				}
				j, err := open()
				if err != nil {
					return err
				}
				defer j.Close()
				return showSession(j, id)
			},
		},
		&cobra.Command{
			Use:   "rm <session>",
			Short: "Delete a session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseSessionID(args[0])
				if err != nil {
					return err
				}
				j, err := open()
				if err != nil {
					return err
				}
				defer j.Close()
				if err := j.Delete(id); err != nil {
					return err
				}
				c.success("Deleted session %d", id)
				return nil
			},
		},
	)

	return cmd
}

func parseSessionID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, vterrors.Newf(vterrors.CategoryCLI, "invalid session id %q", s)
	}
	return id, nil
}

func listSessions(j *journal.Journal) error {
	sessions, err := j.Sessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("  No sessions recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tSTARTED\tEVENTS")
	for _, s := range sessions {
		count := 0
		if err := j.IterateEvents(s.ID, func(journal.Record) { count++ }); err != nil {
			return err
		}
		name := s.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\n", s.ID, name, s.Started.Format(time.DateTime), count)
	}
	return w.Flush()
}

func showSession(j *journal.Journal, id int) error {
	s, err := j.Session(id)
	if err != nil {
		return err
	}
	fmt.Printf("  Session %d %q started %s\n\n", s.ID, s.Name, s.Started.Format(time.DateTime))
	return j.IterateEvents(id, func(r journal.Record) {
		fmt.Printf("  %s\n", r)
	})
}
