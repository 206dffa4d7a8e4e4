//go:build js && wasm

package main

import (
	"bytes"
	"syscall/js"
	"unsafe"

	"github.com/cwbudde/piano-sampler/piano"
	"github.com/cwbudde/piano-sampler/sample"
)

const maxBlockFrames = 128

var (
	globalPiano  *piano.Piano
	assets       []*sample.Asset
	outputBuffer []int16
)

func main() {
	// Keep program running
	c := make(chan struct{})

	js.Global().Set("wasmLoadSample", js.FuncOf(wasmLoadSample))
	js.Global().Set("wasmInit", js.FuncOf(wasmInit))
	js.Global().Set("wasmNoteOn", js.FuncOf(wasmNoteOn))
	js.Global().Set("wasmSetPedal", js.FuncOf(wasmSetPedal))
	js.Global().Set("wasmSetSustain", js.FuncOf(wasmSetSustain))
	js.Global().Set("wasmProcessBlock", js.FuncOf(wasmProcessBlock))
	js.Global().Set("wasmGetMemoryBuffer", js.FuncOf(wasmGetMemoryBuffer))

	println("WASM piano sampler loaded")
	<-c
}

// wasmLoadSample(noteID, arrayBuffer) decodes one WAV file. Call it for
// every note before wasmInit.
func wasmLoadSample(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return false
	}
	noteID := args[0].String()
	u8 := js.Global().Get("Uint8Array").New(args[1])
	length := u8.Get("byteLength").Int()
	if length == 0 {
		println("sample data is empty:", noteID)
		return false
	}

	data := make([]byte, length)
	js.CopyBytesToGo(data, u8)

	a, err := sample.Decode(bytes.NewReader(data))
	if err != nil {
		println("failed to decode", noteID+":", err.Error())
		return false
	}
	a.Note = noteID
	assets = append(assets, a)
	return true
}

// wasmInit(sampleRate, channels) builds the piano from the loaded samples.
// channels <= 0 follows the first sample.
func wasmInit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	lib := sample.NewLibrary(assets...)
	if lib.Len() == 0 {
		println("no samples loaded")
		return false
	}

	params := piano.NewDefaultParams()
	params.SampleRate = args[0].Int()
	params.Channels = lib.First().Channels
	if len(args) > 1 && args[1].Int() > 0 {
		params.Channels = args[1].Int()
	}
	params.MaxBlockFrames = maxBlockFrames

	p, err := piano.NewPiano(lib, params)
	if err != nil {
		println("piano init failed:", err.Error())
		return false
	}
	globalPiano = p
	outputBuffer = make([]int16, maxBlockFrames*params.Channels)

	println("Piano initialized at", params.SampleRate, "Hz with", lib.Len(), "samples")
	return true
}

func wasmNoteOn(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalPiano == nil {
		return false
	}
	return globalPiano.PlayNote(args[0].String())
}

// wasmSetPedal(name, down) with name "damper" or "soft".
func wasmSetPedal(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || globalPiano == nil {
		return nil
	}
	switch args[0].String() {
	case "damper", "sustain":
		globalPiano.SetPedal(piano.PedalDamper, args[1].Bool())
	case "soft":
		globalPiano.SetPedal(piano.PedalSoft, args[1].Bool())
	}
	return nil
}

func wasmSetSustain(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalPiano == nil {
		return nil
	}
	globalPiano.SetSustainPedal(args[0].Bool())
	return nil
}

// wasmProcessBlock(numFrames) renders interleaved int16 frames and returns
// their address in linear memory.
func wasmProcessBlock(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalPiano == nil {
		return 0
	}

	numFrames := args[0].Int()
	if numFrames > maxBlockFrames {
		numFrames = maxBlockFrames
	}
	if numFrames < 1 {
		return 0
	}

	globalPiano.Render(outputBuffer[:numFrames*globalPiano.Channels()])

	ptr := &outputBuffer[0]
	return js.ValueOf(uintptr(unsafe.Pointer(ptr)))
}

func wasmGetMemoryBuffer(this js.Value, args []js.Value) interface{} {
	return js.Global().Get("Go").Get("_inst").Get("exports").Get("mem").Get("buffer")
}
