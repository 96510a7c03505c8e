package cache

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := NewCache()
	defer c.Stop()

	c.Set("role:1", "Admin", time.Minute)

	value, found := c.Get("role:1")
	if !found {
		t.Fatal("Expected key to be present")
	}
	if value != "Admin" {
		t.Errorf("Expected Admin, got %v", value)
	}
}

func TestCache_GetMissing(t *testing.T) {
	c := NewCache()
	defer c.Stop()

	if _, found := c.Get("missing"); found {
		t.Error("Expected missing key to not be found")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache()
	defer c.Stop()

	c.Set("short", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected expired key to not be found")
	}
}

func TestCache_Delete(t *testing.T) {
	c := NewCache()
	defer c.Stop()

	c.Set("key", "value", time.Minute)
	c.Delete("key")

	if _, found := c.Get("key"); found {
		t.Error("Expected deleted key to not be found")
	}
}

func TestCache_Overwrite(t *testing.T) {
	c := NewCache()
	defer c.Stop()

	c.Set("key", "first", time.Minute)
	c.Set("key", "second", time.Minute)

	value, _ := c.Get("key")
	if value != "second" {
		t.Errorf("Expected second, got %v", value)
	}
}
