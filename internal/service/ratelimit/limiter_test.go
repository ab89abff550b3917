package ratelimit

import (
	"testing"
	"time"
)

func TestAllowBurstThenBlock(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("ip:scan", 3, 0) {
			t.Fatalf("request %d inside burst denied", i+1)
		}
	}
	if l.Allow("ip:scan", 3, 0) {
		t.Fatal("request past the burst allowed")
	}
}

func TestAllowKeysIndependent(t *testing.T) {
	l := New()

	if !l.Allow("a:chart", 1, 0) {
		t.Fatal("first key denied")
	}
	if l.Allow("a:chart", 1, 0) {
		t.Fatal("exhausted key allowed")
	}
	if !l.Allow("b:chart", 1, 0) {
		t.Fatal("fresh key denied")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	key := "ip:calendar"

	if !l.Allow(key, 1, 1000) {
		t.Fatal("initial token denied")
	}

	// at 1000 tokens/sec the bucket refills within a few milliseconds
	refilled := false
	for i := 0; i < 200; i++ {
		time.Sleep(time.Millisecond)
		if l.Allow(key, 1, 1000) {
			refilled = true
			break
		}
	}
	if !refilled {
		t.Fatal("bucket never refilled")
	}
}
