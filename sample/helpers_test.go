package sample

import (
	"bytes"
	"encoding/binary"
)

type testChunk struct {
	id   string
	body []byte
}

func buildRIFF(magic, form string, chunks ...testChunk) []byte {
	var body bytes.Buffer
	body.WriteString(form)
	for _, c := range chunks {
		body.WriteString(c.id)
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(c.body)))
		body.Write(c.body)
		if len(c.body)%2 == 1 {
			body.WriteByte(0)
		}
	}
	var out bytes.Buffer
	out.WriteString(magic)
	_ = binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func buildWAV(chunks ...testChunk) []byte {
	return buildRIFF("RIFF", "WAVE", chunks...)
}

func fmtChunk(format, channels uint16, rate uint32, bits uint16) testChunk {
	var b bytes.Buffer
	blockAlign := channels * bits / 8
	_ = binary.Write(&b, binary.LittleEndian, format)
	_ = binary.Write(&b, binary.LittleEndian, channels)
	_ = binary.Write(&b, binary.LittleEndian, rate)
	_ = binary.Write(&b, binary.LittleEndian, rate*uint32(blockAlign))
	_ = binary.Write(&b, binary.LittleEndian, blockAlign)
	_ = binary.Write(&b, binary.LittleEndian, bits)
	return testChunk{id: "fmt ", body: b.Bytes()}
}

func pcmFmt(channels uint16, rate uint32) testChunk {
	return fmtChunk(1, channels, rate, 16)
}

func dataChunk(samples []int16) testChunk {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, samples)
	return testChunk{id: "data", body: b.Bytes()}
}
