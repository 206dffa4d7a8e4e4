package piano

import "math"

// mixVoices adds every active voice to mix, walking the set backwards so
// removals do not disturb the remaining iteration. Caller holds active.mu.
func (p *Piano) mixVoices(mix []int32, frames int, damper bool) {
	set := p.active
	for i := len(set.voices) - 1; i >= 0; i-- {
		v := &set.voices[i]

		if v.atEnd() {
			if damper && !v.sustained {
				v.sustained = true
				v.sustainVolume = 1.0
			}
			if !v.sustained || !p.mixSustain(v, mix, frames, damper) {
				set.remove(i)
			}
			continue
		}

		if damper && !v.sustained {
			// Keeps playing normally; sustains once the sample runs out.
			v.sustained = true
			v.sustainVolume = 1.0
		}
		if p.cutByCeiling(v, damper) {
			set.remove(i)
			continue
		}

		toPlay := frames
		if !damper {
			if remaining := p.ceilingFrames - v.framesPlayed; remaining > 0 && remaining < toPlay {
				toPlay = remaining
			}
		}

		var played int
		if v.sampleRate == p.sampleRate && v.channels == p.channels {
			played = p.mixDirect(v, mix, toPlay)
		} else {
			played = p.mixResampled(v, mix, toPlay)
		}
		v.framesPlayed += played

		if p.cutByCeiling(v, damper) {
			set.remove(i)
		}
	}
}

func (p *Piano) cutByCeiling(v *Voice, damper bool) bool {
	return !damper && !v.sustained && v.framesPlayed >= p.ceilingFrames
}

// mixDirect copies samples verbatim when the asset matches the output format.
func (p *Piano) mixDirect(v *Voice, mix []int32, frames int) int {
	if left := v.framesLeft(); frames > left {
		frames = left
	}
	n := frames * p.channels
	src := v.data[v.position : v.position+n]
	dst := mix[:n]
	for j, s := range src {
		dst[j] += int32(s)
	}
	v.position += n
	return frames
}

// mixResampled steps through the asset at nativeRate/outputRate source
// frames per output frame without interpolation. Output channel c reads
// asset channel c modulo the asset's channel count.
func (p *Piano) mixResampled(v *Voice, mix []int32, frames int) int {
	ratio := float64(v.sampleRate) / float64(p.sampleRate)
	start := v.position / v.channels
	total := v.length / v.channels
	outCh := p.channels

	n := 0
	for ; n < frames; n++ {
		src := start + int(v.phase+float64(n)*ratio)
		if src >= total {
			break
		}
		base := src * v.channels
		out := mix[n*outCh : n*outCh+outCh]
		for c := range out {
			out[c] += int32(v.data[base+c%v.channels])
		}
	}

	advance := v.phase + float64(n)*ratio
	whole := int(advance)
	v.phase = advance - float64(whole)
	v.position = min((start+whole)*v.channels, v.length)
	if v.position == v.length {
		v.phase = 0
	}
	return n
}

// mixSustain holds the voice's last frame at sustainVolume*SustainBoost and
// fades it linearly, slowly while the damper is down and quickly after
// release. It reports false once the volume has reached zero.
func (p *Piano) mixSustain(v *Voice, mix []int32, frames int, damper bool) bool {
	rate := p.releaseRate
	if damper {
		rate = p.damperRate
	}
	var last []int16
	if v.length >= v.channels {
		last = v.data[v.length-v.channels : v.length]
	}
	outCh := p.channels
	boost := p.params.SustainBoost

	for f := 0; f < frames; f++ {
		if last != nil {
			gain := v.sustainVolume * boost
			out := mix[f*outCh : f*outCh+outCh]
			for c := range out {
				out[c] += int32(float64(last[c%v.channels]) * gain)
			}
		}
		v.sustainVolume = math.Max(0, v.sustainVolume-rate)
		if v.sustainVolume <= 0 {
			return false
		}
	}
	return true
}

// writeSoft runs the una corda lowpass and attenuation over mix.
func (p *Piano) writeSoft(out []int16, mix []int32) {
	gain := p.params.SoftGain
	outCh := p.channels
	for i, s := range mix {
		y := p.lowpass.Process(i%outCh, float64(s))
		out[i] = clampFloat16(y * gain)
	}
}

// clampFloat16 truncates toward zero and saturates to the int16 range.
func clampFloat16(x float64) int16 {
	if x >= math.MaxInt16 {
		return math.MaxInt16
	}
	if x <= math.MinInt16 {
		return math.MinInt16
	}
	return int16(x)
}
