package console

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	ct "github.com/daviddengcn/go-colortext"
	"github.com/stretchr/testify/assert"
)

func TestPrintPadsName(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Output: &buf, Padding: 6}

	c.Print("tray", 0, `{"type":"Enter"}`)
	c.Printf("menu", 1, "clicked %s", "quit")
	c.Error("tray", errors.New("gone"))

	assert.Equal(t, "tray   | {\"type\":\"Enter\"}\nmenu   | clicked quit\ntray   | gone\n", buf.String())
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, ct.White, colorFor(-1))
	assert.Equal(t, ct.Cyan, colorFor(0))
	assert.Equal(t, colorFor(1), colorFor(1+len(colors)))
}

func TestLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Output: &buf}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Print("x", 0, "line")
		}()
	}
	wg.Wait()
	assert.Equal(t, bytes.Repeat([]byte("x | line\n"), 20), buf.Bytes())
}
