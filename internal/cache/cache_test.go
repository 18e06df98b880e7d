package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetMissingKey(t *testing.T) {
	c := New[string](10, time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Fatalf("Get on empty cache returned ok")
	}
}

func TestSetGet(t *testing.T) {
	c := New[int](10, time.Minute)
	c.Set("a", 42)
	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Fatalf("Get(a) = %d, %v; want 42, true", got, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	c := New[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("a", 2)
	if got, _ := c.Get("a"); got != 2 {
		t.Fatalf("Get(a) = %d; want 2", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d; want 1", c.Len())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New[string](10, 10*time.Millisecond)
	c.Set("a", "x")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expired entry still returned")
	}
}

func TestSizeEviction(t *testing.T) {
	c := New[int](3, time.Minute)
	for i := 0; i < 4; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d; want 3", c.Len())
	}
	if _, ok := c.Get("k0"); ok {
		t.Fatalf("oldest entry survived eviction")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Fatalf("newest entry evicted")
	}
}

func TestGetRefreshesRecency(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a becomes most recently used
	c.Set("c", 3)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("recently used entry evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatalf("least recently used entry survived")
	}
}

func TestDelete(t *testing.T) {
	c := New[int](10, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("deleted entry still present")
	}
	c.Delete("absent") // no-op
}

func TestCleanExpired(t *testing.T) {
	c := New[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)
	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("CleanExpired = %d; want 2", n)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d; want 1", c.Len())
	}
}
