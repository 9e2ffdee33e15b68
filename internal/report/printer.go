package report

import (
	"fmt"
	"io"
)

// printer writes report text and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

// title starts a section: a blank line, then the title and a colon.
func (p *printer) title(format string, args ...any) {
	p.printf("\n"+format+":\n", args...)
}

func (p *printer) line(format string, args ...any) {
	p.printf(format+"\n", args...)
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func optionalMoney(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return money(*v)
}
