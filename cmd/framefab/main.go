/*
DESCRIPTION
  framefab is a standalone screen-capture and frame-processing tool: it
  samples a display at a target rate, dedupes identical frames via
  content fingerprint, retains a bounded history, and optionally persists
  genuinely new frames as BMPs.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the framefab command-line entrypoint.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coreos/go-systemd/daemon"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/framefab/activity"
	"github.com/ausocean/framefab/capture"
	"github.com/ausocean/framefab/config"
	"github.com/ausocean/framefab/correction"
	"github.com/ausocean/framefab/gate"
	"github.com/ausocean/framefab/scope"
	"github.com/ausocean/framefab/sink"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logPath      = "framefab.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = false
)

const pkg = "framefab: "

// staticDisplays is the built-in enumeration used by -list-displays;
// real per-OS discovery is out of scope (see capture/monitor.go).
var staticDisplays = []capture.Monitor{
	{ID: 0, Name: "display-0", Width: 1920, Height: 1080, Primary: true},
	{ID: 1, Name: "display-1", Width: 1920, Height: 1080},
}

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "show version")
	listDisplays := flag.Bool("list-displays", false, "print enumerated displays and exit")

	display := flag.Uint("capture", 0, "enter capture mode on display N")
	live := flag.Bool("live", false, "show preview window")
	fps := flag.Uint("fps", 30, "target tick rate")
	seconds := flag.Float64("seconds", 0, "duration; <=0 means single snapshot")
	resize := flag.String("resize", "", "resize each captured frame, WxH")
	record := flag.String("record", "", "write non-duplicates as BASE_%06d.bmp")
	noStaticGate := flag.Bool("no-static-gate", false, "skip preflight stability wait")
	staticSec := flag.Float64("static-sec", 1.0, "required stable seconds")
	staticTimeout := flag.Float64("static-timeout", 10.0, "gate timeout")
	staticTolerant := flag.Bool("static-tolerant", false, "signature-only equality in gate")
	grayscale := flag.Bool("grayscale", false, "persistent luma correction (BT.601)")
	gamma := flag.Float64("gamma", 0, "apply gamma correction")
	brightness := flag.Float64("brightness", 0, "additive brightness in [-1,1]")
	contrast := flag.Float64("contrast", 0, "multiplicative contrast around 0.5")
	pixelate := flag.Uint("pixelate", 0, "box-pixelate block size, >=2")
	noAdaptive := flag.Bool("no-adaptive", false, "disable activity tracker gating")
	metricsPath := flag.String("metrics", "", "JSONL metrics file")
	guard := flag.Bool("guard", false, "report per-phase duration/RSS via scope.Scope")
	logLevel := flag.Int("log-level", int(logging.Info), "logging verbosity")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return 0
	}

	if *listDisplays {
		enum := capture.NewStaticEnumerator(staticDisplays)
		monitors, _ := enum.Enumerate()
		for _, m := range monitors {
			fmt.Printf("%d: %s %dx%d primary=%v\n", m.ID, m.Name, m.Width, m.Height, m.Primary)
		}
		return 0
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*logLevel), io.MultiWriter(fileLog, os.Stderr), logSuppress)
	log.Info(pkg+"starting", "version", version)

	cfg := config.Config{
		Logger:         log,
		LogLevel:       int8(*logLevel),
		Display:        uint32(*display),
		Live:           *live,
		FPS:            *fps,
		Seconds:        *seconds,
		RecordBase:     *record,
		NoStaticGate:   *noStaticGate,
		StaticSec:      *staticSec,
		StaticTimeout:  *staticTimeout,
		StaticTolerant: *staticTolerant,
		Grayscale:      *grayscale,
		Gamma:          *gamma,
		Brightness:     *brightness,
		Contrast:       *contrast,
		Pixelate:       *pixelate,
		NoAdaptive:     *noAdaptive,
		MetricsPath:    *metricsPath,
		Guard:          *guard,
	}
	if w, h, err := parseSize(*resize); err != nil {
		log.Fatal(pkg+"bad -resize value", "value", *resize, "error", err.Error())
	} else {
		cfg.ResizeWidth, cfg.ResizeHeight = w, h
	}

	if err := cfg.Validate(); err != nil {
		log.Warning(pkg+"configuration defaulted", "error", err.Error())
	}

	enum := capture.NewStaticEnumerator(staticDisplays)
	mon, ok := enum.ByIndex(cfg.Display)
	if !ok {
		log.Error(pkg+"display not found", "display", cfg.Display)
		return 1
	}

	src := capture.NewFfmpegSource(log, "x11grab", fmt.Sprintf(":0.%d", mon.ID), mon.Width, mon.Height)
	defer src.Close()

	queue := correction.New()
	if cfg.Grayscale {
		queue.EnqueuePersistent(correction.Grayscale())
	}
	if cfg.Gamma > 0 {
		queue.EnqueuePersistent(correction.Gamma(cfg.Gamma))
	}
	if cfg.Brightness != 0 {
		queue.EnqueuePersistent(correction.Brightness(cfg.Brightness))
	}
	if cfg.Contrast > 0 {
		queue.EnqueuePersistent(correction.Contrast(cfg.Contrast))
	}
	if cfg.Pixelate >= 2 {
		queue.EnqueuePersistent(correction.Pixelate(int(cfg.Pixelate)))
	}

	var metrics *sink.Metrics
	if cfg.MetricsPath != "" {
		m, err := sink.NewMetrics(sink.MetricsConfig{Path: cfg.MetricsPath})
		if err != nil {
			log.Fatal(pkg+"could not open metrics sink", "error", err.Error())
		}
		metrics = m
		defer metrics.Close()
	}

	var actCfg *activity.Config
	if !cfg.NoAdaptive {
		actCfg = &activity.Config{}
	}

	var resizeTo *capture.ResizeTo
	if cfg.ResizeWidth > 0 && cfg.ResizeHeight > 0 {
		resizeTo = &capture.ResizeTo{W: cfg.ResizeWidth, H: cfg.ResizeHeight}
	}

	orch := capture.New(src, queue, capture.Config{
		Display:      cfg.Display,
		FPS:          cfg.FPS,
		Seconds:      cfg.Seconds,
		Resize:       resizeTo,
		NoStaticGate: cfg.NoStaticGate,
		GateConfig: gate.Config{
			FPS:                   cfg.FPS,
			RequiredStaticSeconds: cfg.StaticSec,
			TimeoutSeconds:        cfg.StaticTimeout,
			Tolerant:              cfg.StaticTolerant,
			Resize:                (*gate.ResizeTo)(resizeTo),
		},
		ActivityConfig: actCfg,
		RecordBase:     cfg.RecordBase,
		Logger:         log,
		Scope:          scope.New(log, cfg.Guard),
		Metrics:        metrics,
		SdNotify:       sdNotify,
	})

	sum := orch.Run()

	log.Info(pkg+"run complete",
		"ticks", sum.Ticks,
		"frames_unique", sum.FramesUnique,
		"frames_duplicates", sum.FramesDup,
		"gate_ok", sum.GateOK,
		"gate_stable_seconds", sum.GateStableSec,
	)
	fmt.Printf("ticks=%d frames_unique=%d frames_duplicates=%d gate_ok=%v\n",
		sum.Ticks, sum.FramesUnique, sum.FramesDup, sum.GateOK)

	if !sum.GateOK && !cfg.NoStaticGate {
		return 2
	}
	if sum.Err != nil {
		return 1
	}
	return 0
}

// sdNotify adapts daemon.SdNotify to capture.SdNotifyFunc.
func sdNotify(unsetEnvironment bool, state string) (bool, error) {
	return daemon.SdNotify(unsetEnvironment, state)
}

// parseSize parses a "WxH" string; an empty string yields (0,0,nil).
func parseSize(s string) (int, int, error) {
	if s == "" {
		return 0, 0, nil
	}
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
