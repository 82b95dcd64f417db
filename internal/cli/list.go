package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/screen"
	"github.com/mmcdole/purse/internal/search"
	"github.com/mmcdole/purse/internal/tui/styles"
)

var screenNames = []string{"friends", "sent", "received", "cards"}

func pickScreen(screens screen.Screens, name string) (domain.ItemService, error) {
	switch strings.ToLower(name) {
	case "friends":
		return screens.Friends, nil
	case "sent":
		return screens.Sent, nil
	case "received":
		return screens.Received, nil
	case "cards":
		return screens.Cards, nil
	default:
		return nil, fmt.Errorf("unknown list %q (want one of %s)", name, strings.Join(screenNames, ", "))
	}
}

func listCmd(opts *globalOptions) *cobra.Command {
	var (
		filter  string
		asJSON  bool
		noStyle bool
	)

	cmd := &cobra.Command{
		Use:       "list <friends|sent|received|cards>",
		Short:     "Print one list and exit",
		Args:      cobra.ExactArgs(1),
		ValidArgs: screenNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, screen.Selectors{})
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := pickScreen(a.screens, args[0])
			if err != nil {
				return err
			}

			items, err := svc.LoadItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			items = search.Filter(items, filter)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, items)
			}

			width, styled := terminalWidth(out)
			if noStyle {
				styled = false
			}
			writeItems(out, items, width, styled)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show items matching this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the underlying records as JSON")
	cmd.Flags().BoolVar(&noStyle, "plain", false, "never style output")
	return cmd
}

// terminalWidth reports the width of out when it is a terminal
func terminalWidth(out io.Writer) (int, bool) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}

func writeItems(out io.Writer, items []domain.Item, width int, styled bool) {
	if len(items) == 0 {
		fmt.Fprintln(out, "(no items)")
		return
	}

	if !styled {
		for _, item := range items {
			fmt.Fprintf(out, "%s\t%s\n", item.TitleText, item.DetailText)
		}
		return
	}

	for _, item := range items {
		title := styles.TitleStyle.Render(styles.Truncate(item.TitleText, width))
		detail := styles.DimStyle.Render(styles.Truncate(item.DetailText, width))
		fmt.Fprintln(out, lipgloss.JoinVertical(lipgloss.Left, title, detail))
	}
}

func writeJSON(out io.Writer, items []domain.Item) error {
	records := make([]domain.Record, len(items))
	for i, item := range items {
		records[i] = item.Record
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
