// Package console prints named, colored lines to a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	ct "github.com/daviddengcn/go-colortext"
)

type Console struct {
	Output  io.Writer
	Padding int

	// Color enables terminal colors. Colors are written to the process
	// stdout, so leave it off when Output is anything else.
	Color bool

	sync.Mutex
}

var colors = []ct.Color{
	ct.Cyan,
	ct.Yellow,
	ct.Green,
	ct.Magenta,
	ct.Red,
	ct.Blue,
}

// New returns a colored console writing to stdout.
func New(padding int) *Console {
	return &Console{
		Output:  os.Stdout,
		Padding: padding,
		Color:   true,
	}
}

// Print writes line under name. Names with the same index share a color;
// an index of -1 is white.
func (of *Console) Print(name string, index int, line string) {
	of.WriteLine(name, line, colorFor(index), ct.None, false)
}

// Printf formats and prints a line under name.
func (of *Console) Printf(name string, index int, format string, args ...interface{}) {
	of.Print(name, index, fmt.Sprintf(format, args...))
}

// Error prints err under name in red.
func (of *Console) Error(name string, err error) {
	of.WriteLine(name, err.Error(), ct.White, ct.None, true)
}

func colorFor(index int) ct.Color {
	if index < 0 {
		return ct.White
	}
	return colors[index%len(colors)]
}

// Write out a single coloured line
func (of *Console) WriteLine(left, right string, leftC, rightC ct.Color, isError bool) {
	of.Lock()
	defer of.Unlock()

	if of.Color {
		ct.ChangeColor(leftC, true, ct.None, false)
	}
	formatter := fmt.Sprintf("%%-%ds | ", of.Padding)
	fmt.Fprintf(of.Output, formatter, left)

	if of.Color {
		if isError {
			ct.ChangeColor(ct.Red, true, ct.None, true)
		} else if rightC != ct.None {
			ct.ChangeColor(rightC, false, ct.None, false)
		} else {
			ct.ResetColor()
		}
	}
	fmt.Fprintln(of.Output, right)
	if of.Color {
		ct.ResetColor()
	}
}
