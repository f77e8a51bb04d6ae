package video

import "testing"

func TestFrameCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewFrameCache(2)
	k := func(i int) CacheKey { return CacheKey{Variant: "frame", Index: i, Width: 80, Height: 24} }

	c.Put(k(1), "one")
	c.Put(k(2), "two")
	if _, ok := c.Get(k(1)); !ok {
		t.Fatalf("Get(1) missed before eviction")
	}
	c.Put(k(3), "three")

	if _, ok := c.Get(k(2)); ok {
		t.Fatalf("Get(2) hit, want it evicted as least recently used")
	}
	if got, ok := c.Get(k(1)); !ok || got != "one" {
		t.Fatalf("Get(1) = %q, %v; want one, true", got, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestFrameCache_KeySeparatesVariantAndQuality(t *testing.T) {
	c := NewFrameCache(10)
	base := CacheKey{Variant: "frame", Index: 5, Width: 40, Height: 10, Quality: QualityHigh}
	c.Put(base, "live")

	capture := base
	capture.Variant = "capture"
	if _, ok := c.Get(capture); ok {
		t.Fatalf("capture variant hit the live frame entry")
	}
	low := base
	low.Quality = QualityLow
	if _, ok := c.Get(low); ok {
		t.Fatalf("low quality hit the high quality entry")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestQualityPreset_NextAndParse(t *testing.T) {
	if QualityHigh.Next() != QualityLow {
		t.Fatalf("QualityHigh.Next() = %v, want LOW", QualityHigh.Next())
	}
	q, err := ParseQuality(" Medium ")
	if err != nil || q != QualityMedium {
		t.Fatalf("ParseQuality(Medium) = %v, %v; want MEDIUM, nil", q, err)
	}
	if _, err := ParseQuality("ultra"); err == nil {
		t.Fatalf("ParseQuality(ultra) returned nil error")
	}
}
