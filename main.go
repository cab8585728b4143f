package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-stack/stack"
	"github.com/karlmutch/envflag"
	"github.com/karlmutch/errors"
	"github.com/lucasb-eyer/go-colorful"
	logxi "github.com/mgutz/logxi/v1"
	"golang.org/x/term"

	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/driver"
	"github.com/matt-g-everett/ledanim/stream"
)

var (
	logger = logxi.New("ledanim")

	configPath = flag.String("config", "config.yaml", "YAML config file.")
	verbose    = flag.Bool("v", false, "Enable debug logging.")
	dryRun     = flag.Int("dry-run", 0, "Render this many frames to stdout without a broker, then exit.")
	listen     = flag.String("listen", "", "HTTP listen address, overrides http.listen in the config.")
	static     = flag.String("static", "client/dist", "Directory of static files served over HTTP.")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "ledanim drives an LED strip from composable animations over MQTT and OPC")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be set from environment variables by changing dashes '-' to underscores and using upper case.")
}

func init() {
	flag.Usage = usage
}

type app struct {
	Config stream.Config
	Client mqtt.Client
	Scene  *stream.Scene
	Choreo *stream.Choreography

	// mu guards the pipeline, which MQTT and HTTP callbacks reach through
	// trigger on their own goroutines.
	mu       sync.Mutex
	Driver   *driver.Driver
	Streamer *stream.Streamer
}

func newApp(cfg stream.Config) (*app, error) {
	background, errGo := colorful.Hex(cfg.Scene.Background)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	a := &app{Config: cfg, Scene: stream.NewScene(background)}
	if a.Choreo, errGo = stream.NewChoreography(cfg.Scene, cfg.Strip.Pixels, a.Scene); errGo != nil {
		return nil, errGo
	}
	return a, nil
}

// start wires the driver and streamer to clock. The driver subscribes first so
// that each tick moves the dots before the frame is rendered.
func (a *app) start(clock driver.Clock, output stream.Output) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Driver = driver.New(clock)
	a.Streamer = stream.NewStreamer(clock, a.Scene, a.Config.Strip.Pixels, output)
}

func (a *app) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Streamer.Close()
	a.Driver.Close()
}

// trigger submits a fresh copy of the programme. Triggers that arrive before
// start are dropped.
func (a *app) trigger() {
	a.mu.Lock()
	d := a.Driver
	a.mu.Unlock()
	if d == nil {
		logger.Warn("trigger ignored, animations are not running yet")
		return
	}
	logger.Debug("programme triggered")
	for _, ia := range a.Choreo.Programme() {
		d.Submit(ia)
	}
}

func (a *app) handleOnConnect(client mqtt.Client) {
	logger.Info("connected", "broker", a.Config.Mqtt.URL)
	if err := stream.SubscribeTrigger(client, a.Config.Mqtt.Topics.Trigger, a.trigger); err != nil {
		logger.Warn("trigger subscription failed", "error", err.Error())
	}
}

func (a *app) runDry(frames int) {
	var output stream.Output = stream.NewHexOutput(os.Stdout)
	if stream.IsTerminal(os.Stdout) {
		width := 80
		if w, _, errGo := term.GetSize(int(os.Stdout.Fd())); errGo == nil && w > 0 {
			width = w
		}
		output = stream.NewTerminalOutput(os.Stdout, width)
	}

	clock := driver.NewManualClock(0)
	a.start(clock, output)
	defer a.stop()

	a.trigger()
	dt := a.Config.FrameInterval()
	for i := 0; i < frames; i++ {
		clock.Advance(dt)
	}
	fmt.Fprintln(os.Stdout)
}

func (a *app) run(ctx context.Context) error {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.ClientID()).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	// The pipeline is running before the connection so that a retained
	// trigger delivered on subscribe has a driver to submit to.
	outputs := stream.MultiOutput{stream.NewMQTTOutput(a.Client, a.Config.Mqtt.Topics.Stream)}
	if a.Config.Opc.Server != "" {
		opc, err := stream.NewOPCOutput(a.Config.Opc.Server, a.Config.Opc.Channel)
		if err != nil {
			return err
		}
		outputs = append(outputs, opc)
	}

	clock := driver.NewTickerClock(time.Duration(a.Config.FrameInterval() * float64(time.Second)))
	a.start(clock, outputs)
	defer a.stop()

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return errors.Wrap(token.Error()).With("broker", a.Config.Mqtt.URL).With("stack", stack.Trace().TrimRuntime())
	}
	defer a.Client.Disconnect(250)

	addr := a.Config.HTTP.Listen
	if *listen != "" {
		addr = *listen
	}
	if addr != "" {
		server := api.NewApi(a.Streamer, a.Driver, a.trigger, *static)
		go func() {
			if err := server.Serve(ctx, addr); err != nil {
				logger.Warn("http server stopped", "error", err.Error())
			}
		}()
	}

	a.trigger()
	if errGo := clock.Run(ctx); errGo != nil && errGo != context.Canceled {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	if !flag.Parsed() {
		envflag.Parse()
	}
	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	cfg, err := stream.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("config could not be loaded", "error", err.Error())
	}
	logger.Debug("config loaded", "config", fmt.Sprintf("%+v", cfg))

	a, err := newApp(cfg)
	if err != nil {
		logger.Fatal("scene could not be built", "error", err.Error())
	}

	if *dryRun > 0 {
		a.runDry(*dryRun)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.run(ctx); err != nil {
		logger.Fatal("stopped", "error", err.Error())
	}
}
