package main

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]struct {
		in  float64
		exp string
	}{
		"zero":       {in: 0, exp: "0.00"},
		"small":      {in: 12.5, exp: "12.50"},
		"thousands":  {in: 50000, exp: "50,000.00"},
		"millions":   {in: 1234567.891, exp: "1,234,567.89"},
		"negative":   {in: -1500.456, exp: "-1,500.46"},
		"float dust": {in: 0.1 + 0.2, exp: "0.30"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "money", formatMoney(tt.in), tt.exp)
		})
	}
}

func TestSignedMoney(t *testing.T) {
	testutil.AssertEqual(t, "gain", signedMoney(10), "+10.00")
	testutil.AssertEqual(t, "loss", signedMoney(-10), "-10.00")
	testutil.AssertEqual(t, "flat", signedMoney(0), "0.00")
}

func TestTruncate(t *testing.T) {
	testutil.AssertEqual(t, "short", truncate(" Blaster ", 10), "Blaster")
	testutil.AssertEqual(t, "long", truncate("Galactic Blaster Deluxe", 10), "Galacti...")
	testutil.AssertEqual(t, "tiny", truncate("Galactic", 2), "Ga")
}

func TestUnlockedChoices(t *testing.T) {
	w := game.DefaultWorld()
	testutil.AssertEqual(t, "genres", len(unlockedGenres(w)), 2)
	testutil.AssertEqual(t, "platforms", unlockedPlatforms(w)[0], "pc")

	w.Platforms = nil
	testutil.AssertEqual(t, "fallback", unlockedPlatforms(w)[0], "pc")
}
