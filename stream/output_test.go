package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/karlmutch/errors"
	"github.com/lucasb-eyer/go-colorful"
)

type recordingOutput struct {
	frames []*Frame
	err    error
}

func (o *recordingOutput) Send(f *Frame) error {
	if o.err != nil {
		return o.err
	}
	o.frames = append(o.frames, f.Clone())
	return nil
}

func TestHexOutput(t *testing.T) {
	var buf bytes.Buffer
	o := NewHexOutput(&buf)
	f := NewFrame(2)
	f.SetPixel(1, colorful.Color{B: 1})
	if err := o.Send(f); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1 #000000 #0000ff\n" {
		t.Errorf("output = %q", got)
	}
}

func TestTerminalOutputDownsamples(t *testing.T) {
	var buf bytes.Buffer
	o := NewTerminalOutput(&buf, 4)
	if err := o.Send(NewFrame(100)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\r") {
		t.Errorf("preview should redraw in place: %q", buf.String())
	}
}

func TestMultiOutput(t *testing.T) {
	broken := &recordingOutput{err: errors.New("unplugged")}
	ok := &recordingOutput{}
	m := MultiOutput{broken, ok}
	if err := m.Send(NewFrame(1)); err == nil {
		t.Error("expected the broken output's error")
	}
	if len(ok.frames) != 1 {
		t.Error("healthy output should still receive the frame")
	}
}
