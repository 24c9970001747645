package booking

import (
	"reflect"
	"testing"
	"time"

	"slotbook/models"
)

func TestCachesDaysMissOnUnknownLocation(t *testing.T) {
	c := NewCaches(time.Hour, time.Hour, 6)

	if _, ok := c.Days("Center", "A"); ok {
		t.Fatalf("expected miss for unknown location")
	}
}

func TestCachesDaysMissOnUnknownProvider(t *testing.T) {
	c := NewCaches(time.Hour, time.Hour, 6)
	c.PutDays("Center", "A", []string{"01.01.2030"})

	if _, ok := c.Days("Center", "B"); ok {
		t.Fatalf("expected miss for provider without cached entry")
	}
}

func TestCachesPutDaysNeverOverwrites(t *testing.T) {
	c := NewCaches(time.Hour, time.Hour, 6)
	c.PutDays("Center", "A", []string{"01.01.2030"})
	c.PutDays("Center", "A", []string{"02.01.2030", "03.01.2030"})

	days, ok := c.Days("Center", "A")
	if !ok {
		t.Fatalf("expected hit for cached provider")
	}
	if !reflect.DeepEqual(days, []string{"01.01.2030"}) {
		t.Fatalf("expected first value to persist, got %v", days)
	}
}

func TestCachesPutDaysMergesNewProviders(t *testing.T) {
	c := NewCaches(time.Hour, time.Hour, 6)
	c.PutDays("Center", "A", []string{"01.01.2030"})
	c.PutDays("Center", "B", []string{"02.01.2030"})

	a, okA := c.Days("Center", "A")
	b, okB := c.Days("Center", "B")
	if !okA || !okB {
		t.Fatalf("expected hits for both providers, got %v %v", okA, okB)
	}
	if !reflect.DeepEqual(a, []string{"01.01.2030"}) || !reflect.DeepEqual(b, []string{"02.01.2030"}) {
		t.Fatalf("unexpected cached values: %v %v", a, b)
	}
}

func TestCachesAnyProviderKey(t *testing.T) {
	c := NewCaches(time.Hour, time.Hour, 6)
	c.PutDays("Center", "", []string{"01.01.2030"})

	if _, ok := c.Days("Center", models.AnyProvider); !ok {
		t.Fatalf("expected empty filter and %q to share a key", models.AnyProvider)
	}
}

func TestCachesDaysExpire(t *testing.T) {
	c := NewCaches(time.Hour, 20*time.Millisecond, 6)
	c.PutDays("Center", "A", []string{"01.01.2030"})

	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Days("Center", "A"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCachesMetadataRoundTrip(t *testing.T) {
	c := NewCaches(time.Hour, time.Hour, 6)

	if _, ok := c.SheetList(); ok {
		t.Fatalf("expected cold sheet-list miss")
	}
	c.SetSheetList([]string{"Providers", "01.01.2030"})
	c.SetDirectory(models.Directory{"Center": {"A"}})

	titles, ok := c.SheetList()
	if !ok || !reflect.DeepEqual(titles, []string{"Providers", "01.01.2030"}) {
		t.Fatalf("unexpected sheet list: %v (hit=%v)", titles, ok)
	}
	dir, ok := c.Directory()
	if !ok || !reflect.DeepEqual(dir, models.Directory{"Center": {"A"}}) {
		t.Fatalf("unexpected directory: %v (hit=%v)", dir, ok)
	}
}
