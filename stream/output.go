package stream

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/kellydunn/go-opc"
	"golang.org/x/term"
)

// Output delivers rendered frames to a device.
type Output interface {
	Send(f *Frame) error
}

// MQTTOutput publishes binary frames to an ledrx device over MQTT.
type MQTTOutput struct {
	client mqtt.Client
	topic  string
}

// NewMQTTOutput creates an MQTTOutput publishing on topic.
func NewMQTTOutput(client mqtt.Client, topic string) *MQTTOutput {
	o := new(MQTTOutput)
	o.client = client
	o.topic = topic
	return o
}

// Send publishes f and waits for the broker to accept it.
func (o *MQTTOutput) Send(f *Frame) error {
	b, _ := f.MarshalBinary()
	token := o.client.Publish(o.topic, 2, false, b)
	token.Wait()
	if errGo := token.Error(); errGo != nil {
		return errors.Wrap(errGo).With("topic", o.topic).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// SubscribeTrigger calls fn whenever a message arrives on topic.
func SubscribeTrigger(client mqtt.Client, topic string, fn func()) error {
	handler := func(client mqtt.Client, msg mqtt.Message) {
		logger.Info("Trigger received", "topic", msg.Topic(), "payload", string(msg.Payload()))
		fn()
	}
	if token := client.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
		return errors.Wrap(token.Error()).With("topic", topic).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// OPCOutput sends frames to a fadecandy (or any Open Pixel Control) server.
type OPCOutput struct {
	client  *opc.Client
	server  string
	channel uint8
}

// NewOPCOutput connects to an OPC server over TCP.
func NewOPCOutput(server string, channel uint8) (*OPCOutput, error) {
	oc := opc.NewClient()
	if errGo := oc.Connect("tcp", server); errGo != nil {
		return nil, errors.Wrap(errGo).With("url", server).With("stack", stack.Trace().TrimRuntime())
	}
	return &OPCOutput{client: oc, server: server, channel: channel}, nil
}

// Send writes f as a single set-pixel-colours message.
func (o *OPCOutput) Send(f *Frame) error {
	m := opc.NewMessage(o.channel)
	m.SetLength(uint16(f.Len() * 3))
	for i := 0; i < f.Len(); i++ {
		r, g, b := f.Pixel(i).Clamped().RGB255()
		m.SetPixelColor(i, r, g, b)
	}
	if errGo := o.client.Send(m); errGo != nil {
		return errors.Wrap(errGo).With("url", o.server).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// TerminalOutput previews frames as a row of coloured cells, redrawn in place.
type TerminalOutput struct {
	w     io.Writer
	width int
}

// NewTerminalOutput creates a preview at most width cells wide. Frames with
// more pixels are sampled down.
func NewTerminalOutput(w io.Writer, width int) *TerminalOutput {
	if width <= 0 {
		width = 80
	}
	return &TerminalOutput{w: w, width: width}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Send redraws the preview line.
func (o *TerminalOutput) Send(f *Frame) error {
	cells := f.Len()
	if cells > o.width {
		cells = o.width
	}
	var sb strings.Builder
	sb.WriteString("\r")
	for i := 0; i < cells; i++ {
		p := f.Pixel(i * f.Len() / cells)
		sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(p.Clamped().Hex())).Render(" "))
	}
	if _, errGo := io.WriteString(o.w, sb.String()); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// HexOutput writes one line of hex colours per frame, for piping and logs.
type HexOutput struct {
	w     io.Writer
	count int
}

// NewHexOutput creates a HexOutput writing to w.
func NewHexOutput(w io.Writer) *HexOutput {
	return &HexOutput{w: w}
}

// Send writes the frame number and its pixels.
func (o *HexOutput) Send(f *Frame) error {
	o.count++
	if _, errGo := fmt.Fprintf(o.w, "%d %s\n", o.count, strings.Join(f.Hex(), " ")); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// MultiOutput sends every frame to each output in turn. All outputs are tried
// even when one fails; the first error is returned.
type MultiOutput []Output

// Send fans f out.
func (m MultiOutput) Send(f *Frame) error {
	var first error
	for _, o := range m {
		if err := o.Send(f); err != nil && first == nil {
			first = err
		}
	}
	return first
}
