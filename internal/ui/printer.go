package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muurk/shoplist/internal/shopitem"
)

// Printer writes styled command output to a writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter returns a Printer for w. A nil w means os.Stdout.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// Width returns the content width used for boxes.
func (p *Printer) Width() int { return p.width }

func (p *Printer) Println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

// PrintSaved reports a stored item.
func (p *Printer) PrintSaved(title string, it shopitem.ShopItem) {
	p.Println(RenderSuccess(title, ItemDetails(it), p.width))
}

// PrintError reports a failed command.
func (p *Printer) PrintError(title string, err error, hints ...string) {
	p.Println(RenderFailure(title, err, hints, p.width))
}

// PrintItems prints the item list.
func (p *Printer) PrintItems(items []shopitem.ShopItem) {
	p.Println(RenderItemList(items))
}
