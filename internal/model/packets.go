package model

import "fmt"

// Packets counts packets per size bucket. Buckets are always rendered in the
// order small, medium, large, xlarge.
type Packets struct {
	Small  int `json:"small_packets" validate:"gte=0"`
	Medium int `json:"medium_packets" validate:"gte=0"`
	Large  int `json:"large_packets" validate:"gte=0"`
	XLarge int `json:"xlarge_packets" validate:"gte=0"`
}

// Add returns p + o per bucket.
func (p Packets) Add(o Packets) Packets {
	return Packets{
		Small:  p.Small + o.Small,
		Medium: p.Medium + o.Medium,
		Large:  p.Large + o.Large,
		XLarge: p.XLarge + o.XLarge,
	}
}

// Sub returns p - o per bucket. The result may be negative.
func (p Packets) Sub(o Packets) Packets {
	return p.Add(o.Scale(-1))
}

// Scale multiplies every bucket by factor.
func (p Packets) Scale(factor int) Packets {
	return Packets{
		Small:  p.Small * factor,
		Medium: p.Medium * factor,
		Large:  p.Large * factor,
		XLarge: p.XLarge * factor,
	}
}

// Total returns the sum of all buckets.
func (p Packets) Total() int {
	return p.Small + p.Medium + p.Large + p.XLarge
}

// IsZero reports whether every bucket is zero.
func (p Packets) IsZero() bool {
	return p == Packets{}
}

// HasNegative reports whether any bucket is below zero.
func (p Packets) HasNegative() bool {
	return p.Small < 0 || p.Medium < 0 || p.Large < 0 || p.XLarge < 0
}

// Floor splits p into the clamped counter (every bucket >= 0) and the
// shortfall that was cut off (every bucket <= 0).
func (p Packets) Floor() (clamped, shortfall Packets) {
	floor := func(n int) (int, int) {
		if n < 0 {
			return 0, n
		}
		return n, 0
	}
	clamped.Small, shortfall.Small = floor(p.Small)
	clamped.Medium, shortfall.Medium = floor(p.Medium)
	clamped.Large, shortfall.Large = floor(p.Large)
	clamped.XLarge, shortfall.XLarge = floor(p.XLarge)
	return clamped, shortfall
}

// Breakdown renders the counts as "S:2, M:1, L:0, XL:0".
func (p Packets) Breakdown() string {
	return fmt.Sprintf("S:%d, M:%d, L:%d, XL:%d", p.Small, p.Medium, p.Large, p.XLarge)
}

// SignedBreakdown renders the counts with explicit signs, as "S:+2, M:-1, L:+0, XL:+0".
func (p Packets) SignedBreakdown() string {
	return fmt.Sprintf("S:%+d, M:%+d, L:%+d, XL:%+d", p.Small, p.Medium, p.Large, p.XLarge)
}
