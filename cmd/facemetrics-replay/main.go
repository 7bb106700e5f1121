// facemetrics-replay: replay a JSONL detection trace through the metrics
// pipeline and print per-frame status summaries. Useful for tuning
// thresholds without a camera.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/teslashibe/go-facemetrics/internal/log"
	"github.com/teslashibe/go-facemetrics/pkg/detect"
	"github.com/teslashibe/go-facemetrics/pkg/face"
	"github.com/teslashibe/go-facemetrics/pkg/geom"
	"github.com/teslashibe/go-facemetrics/pkg/pipeline"
	"github.com/teslashibe/go-facemetrics/pkg/protocol"
)

func main() {
	flag.Parse()
	log.Init(os.Getenv("LOG_LEVEL"))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: facemetrics-replay <trace.jsonl>")
		fmt.Fprintln(os.Stderr, "  Each line is a protocol message; only \"detections\" messages are replayed.")
		os.Exit(1)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	p, err := pipeline.New(face.DefaultConfig(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("🎞  Replaying", path)
	fmt.Println()

	counts := make(map[face.Status]int)
	var qualitySum float64
	frames := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		msg, err := protocol.ParseMessage(line)
		if err != nil {
			log.Warn("skipping bad line", "err", err)
			continue
		}
		if msg.Type != protocol.TypeDetections {
			continue
		}

		data, err := msg.GetDetectionsData()
		if err != nil {
			log.Warn("skipping bad detections payload", "err", err)
			continue
		}

		dets := make([]detect.Detection, 0, len(data.Faces))
		for _, w := range data.Faces {
			dets = append(dets, detect.FromWire(w, data.ImageWidth, data.ImageHeight))
		}

		frame, err := p.Process(detect.SelectPrimary(dets))
		if err != nil {
			log.Warn("frame rejected", "err", err)
			continue
		}

		counts[frame.Status]++
		qualitySum += frame.Raw.Quality
		frames++

		fmt.Printf("#%04d %-10s quality=%.3f range=%s box=%s\n",
			frame.Seq, frame.Status, frame.Raw.Quality,
			formatRange(frame.RangeCm), formatBox(frame.Smoothed.Box))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ read %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Println()
	if frames == 0 {
		fmt.Println("No detection frames in trace.")
		return
	}

	fmt.Printf("Frames: %d   mean quality: %.3f\n", frames, qualitySum/float64(frames))
	for _, st := range []face.Status{
		face.StatusDetected, face.StatusNoFace, face.StatusTooFar,
		face.StatusTooClose, face.StatusMisaligned,
	} {
		if n := counts[st]; n > 0 {
			fmt.Printf("  %-12s %d\n", st, n)
		}
	}
}

func formatRange(cm float64) string {
	if cm <= 0 {
		return "?"
	}
	return fmt.Sprintf("%.0fcm", cm)
}

func formatBox(r geom.Rect) string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f)", r.Left, r.Top, r.Width(), r.Height())
}
