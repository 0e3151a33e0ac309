package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/render"
)

const shellHelp = `Commands:
  add                 record an entry (prompts for each field)
  balance             show the running balance
  list                show every entry in order
  category <name>     show entries in one category (exact match)
  totals              show per-category totals
  summary             show income, expense and balance
  verify              check the balance against the entries
  export              print entries as CSV
  categories          show suggested categories
  help                show this help
  quit                leave the shell`

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Record and query entries interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session{
				ledger:     a.newLedger(),
				printer:    a.printer(cmd.OutOrStdout()),
				in:         bufio.NewScanner(cmd.InOrStdin()),
				out:        cmd.OutOrStdout(),
				now:        time.Now,
				dateFormat: a.cfg.DateFormat,
				categories: a.cfg.Categories,
			}
			return s.run()
		},
	}
}

// session is one interactive ledger. The ledger lives only as long as the
// session.
type session struct {
	ledger     *ledger.Ledger
	printer    *render.Printer
	in         *bufio.Scanner
	out        io.Writer
	now        func() time.Time
	dateFormat string
	categories []string
}

func (s *session) run() error {
	fmt.Fprintln(s.out, `tally shell. Type "help" for commands.`)
	for {
		line, ok := s.prompt("> ")
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		name, arg, _ := strings.Cut(line, " ")
		switch strings.TrimSpace(name) {
		case "":
		case "add":
			if err := s.add(); err != nil {
				if !errors.Is(err, io.EOF) {
					fmt.Fprintf(s.out, "error: %v\n", err)
					continue
				}
				fmt.Fprintln(s.out)
				return s.in.Err()
			}
		case "balance":
			s.printer.Balance(s.ledger.TotalBalance())
		case "list":
			s.printer.Entries(s.ledger.AllEntries(), render.NoEntries)
		case "category":
			s.printer.Entries(s.ledger.EntriesByCategory(arg), render.NoCategoryEntries)
		case "totals":
			s.printer.CategoryTotals(s.ledger.CategoryTotals())
		case "summary":
			s.printer.Summary(s.ledger.Summary())
		case "verify":
			s.verify()
		case "export":
			if err := ledger.WriteEntries(s.out, s.ledger.AllEntries()); err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		case "categories":
			fmt.Fprintln(s.out, strings.Join(s.categories, ", "))
		case "help":
			fmt.Fprintln(s.out, shellHelp)
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown command %q\n", name)
		}
	}
}

// add prompts for the five entry fields. A blank date means today.
func (s *session) add() error {
	var p ledger.AppendParams
	fields := []struct {
		label string
		dst   *string
	}{
		{"Date (blank for today): ", &p.Date},
		{"Kind (" + string(model.KindIncome) + "/" + string(model.KindExpense) + "): ", (*string)(&p.Kind)},
		{"Category: ", &p.Category},
		{"Description: ", &p.Description},
		{"Amount: ", &p.Amount},
	}
	for _, f := range fields {
		v, ok := s.prompt(f.label)
		if !ok {
			return io.EOF
		}
		*f.dst = v
	}

	if p.Date == "" {
		p.Date = s.now().Format(s.dateFormat)
	}

	e, err := s.ledger.Append(p)
	if errors.Is(err, ledger.ErrInvalidAmount) {
		return fmt.Errorf("amount must be a number, got %q", p.Amount)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added: %s\n", s.printer.Line(e))
	return nil
}

func (s *session) verify() {
	errs := s.ledger.Verify()
	if len(errs) == 0 {
		fmt.Fprintf(s.out, "OK: %d entries, balance %s\n", s.ledger.Len(), s.printer.Money(s.ledger.TotalBalance()))
		return
	}
	for _, e := range errs {
		fmt.Fprintf(s.out, "FAIL: %v\n", e)
	}
}

func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}
