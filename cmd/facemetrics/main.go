// facemetrics: live face-metrics dashboard
// Captures camera frames, extracts face metrics, and serves a realtime
// dashboard with positioning guidance.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/teslashibe/go-facemetrics/internal/config"
	"github.com/teslashibe/go-facemetrics/internal/log"
	"github.com/teslashibe/go-facemetrics/pkg/camera"
	"github.com/teslashibe/go-facemetrics/pkg/detect"
	"github.com/teslashibe/go-facemetrics/pkg/face"
	"github.com/teslashibe/go-facemetrics/pkg/overlay"
	"github.com/teslashibe/go-facemetrics/pkg/pipeline"
	"github.com/teslashibe/go-facemetrics/pkg/web"
)

var version = "1.0.0"

func main() {
	lowRes := flag.Bool("low-res", false, "Capture at 640x480 instead of 720p")
	flag.Parse()

	// .env is optional; real environment variables win
	godotenv.Load()
	log.Init(config.LogLevel())

	fmt.Println()
	fmt.Println("🙂 facemetrics v" + version)
	fmt.Println("   Live face metrics dashboard")
	fmt.Println()

	mapper := overlay.NewMapper()
	if err := mapper.SetTransform(config.MirrorDisplay(), config.DisplayRotation()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Display transform: %v\n", err)
		os.Exit(1)
	}

	p, err := pipeline.New(face.DefaultConfig(), mapper)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Pipeline config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	source, cleanup, err := buildSource(ctx, *lowRes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Detection source: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	server := web.NewServer(config.Port(), p)
	server.StartAsync(ctx)
	defer server.Shutdown()

	fmt.Printf("🚀 Dashboard: http://localhost:%s\n", config.Port())
	fmt.Printf("   Frames:    ws://localhost:%s/ws/frames\n", config.Port())
	fmt.Println()

	runner := pipeline.NewRunner(p, source, server, config.FrameInterval())
	runner.Run(ctx)

	fmt.Println("\n👋 Shutting down")
}

// buildSource picks the detection source: a remote detector feed when
// DETECTOR_URL is set, the local camera plus YuNet otherwise.
func buildSource(ctx context.Context, lowRes bool) (pipeline.DetectionSource, func(), error) {
	if url := config.DetectorURL(); url != "" {
		fmt.Printf("📡 Remote detector: %s\n", url)
		src := detect.NewRemoteSource(url)
		go src.Run(ctx)
		return src, func() { src.Close() }, nil
	}

	detCfg := detect.DefaultConfig()
	detCfg.ModelPath = config.ModelPath()

	camCfg := camera.DefaultConfig()
	if lowRes {
		camCfg = camera.LowResConfig()
	}
	camCfg.DeviceIndex = config.CameraIndex()

	cam, err := camera.NewCapture(camCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := cam.Open(); err != nil {
		return nil, nil, err
	}

	detector, err := detect.NewYuNet(detCfg)
	if err != nil {
		cam.Close()
		return nil, nil, err
	}

	fmt.Printf("📷 Camera %d (%dx%d @ %d fps)\n",
		camCfg.DeviceIndex, camCfg.Width, camCfg.Height, camCfg.FPS)
	fmt.Printf("🔍 YuNet model: %s\n", detCfg.ModelPath)

	src := detect.NewCameraSource(cam, detector)
	cleanup := func() {
		detector.Close()
		cam.Close()
	}
	return src, cleanup, nil
}
