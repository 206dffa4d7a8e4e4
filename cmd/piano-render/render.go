package main

import (
	"log/slog"
	"math"

	"github.com/cwbudde/piano-sampler/analysis"
	"github.com/cwbudde/piano-sampler/piano"
)

// engine is the part of the piano a render drives.
type engine interface {
	PlayNote(noteID string) bool
	SetPedal(pedal piano.Pedal, down bool)
	Render(out []int16)
	SampleRate() int
	Channels() int
}

type renderConfig struct {
	blockFrames int
	duration    float64 // seconds; fixed length when autoStop is off
	// Auto-stop: after the last event and minDuration, stop once holdBlocks
	// consecutive blocks fall below thresholdDBFS, capped at maxDuration.
	autoStop      bool
	thresholdDBFS float64
	holdBlocks    int
	minDuration   float64
	maxDuration   float64
}

// render plays events through p block by block. Events fire at the start
// of the block containing their time.
func render(p engine, events []event, cfg renderConfig, logger *slog.Logger) []int16 {
	sr := p.SampleRate()
	ch := p.Channels()
	blockSize := cfg.blockFrames
	if blockSize < 1 {
		blockSize = 128
	}

	seconds := cfg.duration
	if cfg.autoStop {
		seconds = math.Max(cfg.maxDuration, cfg.minDuration)
	}
	maxFrames := int(float64(sr) * seconds)
	if maxFrames < 1 {
		maxFrames = 1
	}
	minFrames := int(float64(sr) * math.Max(cfg.minDuration, lastEventTime(events)))
	thresholdLin := math.Pow(10.0, cfg.thresholdDBFS/20.0)
	hold := cfg.holdBlocks
	if hold < 1 {
		hold = 1
	}

	samples := make([]int16, 0, maxFrames*ch)
	block := make([]int16, blockSize*ch)
	next := 0
	belowCount := 0
	framesRendered := 0
	for framesRendered < maxFrames {
		framesToRender := blockSize
		if framesRendered+framesToRender > maxFrames {
			framesToRender = maxFrames - framesRendered
		}

		for next < len(events) && int(events[next].at*float64(sr)) < framesRendered+framesToRender {
			fire(p, events[next], logger)
			next++
		}

		out := block[:framesToRender*ch]
		p.Render(out)
		samples = append(samples, out...)
		framesRendered += framesToRender

		if cfg.autoStop && framesRendered >= minFrames && next == len(events) {
			if analysis.RMSInt16(out) < thresholdLin {
				belowCount++
				if belowCount >= hold {
					break
				}
			} else {
				belowCount = 0
			}
		}
	}
	return samples
}

func fire(p engine, ev event, logger *slog.Logger) {
	switch ev.kind {
	case eventNote:
		if !p.PlayNote(ev.note) {
			logger.Warn("note has no sample", "note", ev.note, "at", ev.at)
		}
	case eventPedal:
		p.SetPedal(ev.pedal, ev.down)
	}
}
