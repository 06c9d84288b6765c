package market

import "strings"

type Regime string

const (
	Bull    Regime = "bull"
	Neutral Regime = "neutral"
	Bear    Regime = "bear"
)

// Dynamics tunes one volatility preset.
type Dynamics struct {
	NoiseScale        float64
	ShockProb         float64
	ShockScale        float64
	ExtremeShockProb  float64
	ExtremeShockScale float64
	MeanReversion     float64
	AnchorNoiseScale  float64
	RegimeSwitchProb  float64
	MaxDropPerTick    float64
}

// Preset returns the dynamics for calm, mor or wild. Anything else is mor.
func Preset(mode string) Dynamics {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "calm":
		return Dynamics{
			NoiseScale:        0.020,
			ShockProb:         0.05,
			ShockScale:        0.09,
			ExtremeShockProb:  0.008,
			ExtremeShockScale: 0.22,
			MeanReversion:     0.03,
			AnchorNoiseScale:  0.012,
			RegimeSwitchProb:  0.04,
			MaxDropPerTick:    1.20,
		}
	case "wild":
		return Dynamics{
			NoiseScale:        0.060,
			ShockProb:         0.18,
			ShockScale:        0.20,
			ExtremeShockProb:  0.050,
			ExtremeShockScale: 0.60,
			MeanReversion:     0.010,
			AnchorNoiseScale:  0.038,
			RegimeSwitchProb:  0.11,
			MaxDropPerTick:    2.60,
		}
	default:
		return Dynamics{
			NoiseScale:        0.038,
			ShockProb:         0.11,
			ShockScale:        0.14,
			ExtremeShockProb:  0.020,
			ExtremeShockScale: 0.35,
			MeanReversion:     0.018,
			AnchorNoiseScale:  0.022,
			RegimeSwitchProb:  0.07,
			MaxDropPerTick:    2.00,
		}
	}
}

// ValidMode reports whether mode names a preset.
func ValidMode(mode string) bool {
	switch mode {
	case "calm", "mor", "wild":
		return true
	}
	return false
}

func randomRegime(seed float64) Regime {
	switch {
	case seed < 0.33:
		return Bear
	case seed < 0.66:
		return Neutral
	default:
		return Bull
	}
}

func (r Regime) drift() float64 {
	switch r {
	case Bull:
		return 0.0085
	case Bear:
		return -0.0085
	default:
		return 0
	}
}

func meanReversion(price, anchor, strength float64) float64 {
	if anchor <= 0 {
		return 0
	}
	return strength * ((anchor - price) / anchor)
}

func normalish(seed float64) float64 {
	return seed + seed - 1
}

func signedShock(magSeed, signSeed, base float64) float64 {
	mag := base * (0.35 + 2.8*magSeed*magSeed)
	if signSeed < 0.5 {
		return -mag
	}
	return mag
}
