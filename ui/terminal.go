// Package ui renders session views on a terminal.
// It observes views and never modifies domain state or runtime behavior.
package ui

import (
	"chatroom/contract"
	"chatroom/domain"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var _ contract.ViewObserver = (*Terminal)(nil)

// Terminal prints every view it observes to out.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	colours bool
}

func NewTerminal(out io.Writer, colours bool) *Terminal {
	return &Terminal{out: out, colours: colours}
}

func (t *Terminal) Observe(view domain.View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !view.Connected {
		fmt.Fprintln(t.out, t.paint(color.FgYellow, "not connected, waiting for registration..."))
		return
	}

	fmt.Fprintf(t.out, "\n%s  tab: %s  (v%d)\n",
		t.paint(color.FgCyan, "connected as "+string(view.Self)),
		t.paint(color.FgGreen, view.ActiveTab.String()),
		view.Version)

	if len(view.Participants) > 0 {
		table := tablewriter.NewWriter(t.out)
		table.SetHeader([]string{"#", "Participant"})
		table.SetBorder(false)
		table.AppendBulk(lo.Map(view.Participants, func(id domain.Identity, i int) []string {
			name := string(id)
			if view.ActiveTab.Peer() == id && !view.ActiveTab.IsPublic() {
				name += " *"
			}
			return []string{strconv.Itoa(i + 1), name}
		}))
		table.Render()
	}

	for _, msg := range view.ActiveMessages {
		if msg.SenderName == view.Self {
			fmt.Fprintf(t.out, "%40s  %s\n", msg.Message, t.paint(color.FgMagenta, "<"+string(msg.SenderName)+">"))
			continue
		}
		fmt.Fprintf(t.out, "%s  %s\n", t.paint(color.FgBlue, "<"+string(msg.SenderName)+">"), msg.Message)
	}
}

func (t *Terminal) paint(c color.Color, text string) string {
	if !t.colours {
		return text
	}
	return c.Render(text)
}
