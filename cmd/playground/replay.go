package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"

	"github.com/gaorkl/simple-playgrounds-sub000/common/replay"
	"github.com/gaorkl/simple-playgrounds-sub000/game/engine"
)

func replayAction(file string, every int) error {
	if file == "" {
		return errors.New("--file is required")
	}
	if every < 1 {
		every = 1
	}

	episode := strings.TrimSuffix(filepath.Base(file), ".jsonl.zst")
	r, err := replay.NewReplayer(file, episode)
	if err != nil {
		return err
	}

	metadata := r.Metadata()
	fmt.Println(chalk.Green.Color(fmt.Sprintf("%s, recorded %s, agents %v", metadata.Playground, metadata.Date, metadata.Agents)))

	frames := 0
	for msg := range r.Read() {
		frames++
		if msg.Index%every != 0 {
			continue
		}

		var frame engine.Frame
		if err := json.Unmarshal([]byte(msg.Line), &frame); err != nil {
			r.Stop()
			return errors.Wrapf(err, "frame %d", msg.Index)
		}

		fmt.Println(formatFrame(frame))
	}

	fmt.Printf("%d frames\n", frames)
	return nil
}

func formatFrame(frame engine.Frame) string {
	var b strings.Builder

	fmt.Fprintf(&b, "tick %4d", frame.Tick)
	for _, a := range frame.Agents {
		fmt.Fprintf(&b, "  %s (%.1f, %.1f) r=%.2f", a.Name, a.Position.GetX(), a.Position.GetY(), a.Reward)
	}
	if frame.Done {
		b.WriteString(chalk.Red.Color("  done"))
	}

	return b.String()
}
