package utils

import (
	"testing"
	"time"
)

func TestRuneByteConversions(t *testing.T) {
	line := []byte("héllo  ")
	tests := []struct {
		runeIndex  int
		byteOffset int
	}{
		{0, 0},
		{1, 1},
		{2, 3}, // 'é' is two bytes
		{5, 6},
		{7, 8},
	}
	for _, tt := range tests {
		if got := RuneIndexToByteOffset(line, tt.runeIndex); got != tt.byteOffset {
			t.Errorf("RuneIndexToByteOffset(%d) = %d, want %d", tt.runeIndex, got, tt.byteOffset)
		}
		if got := ByteOffsetToRuneIndex(line, tt.byteOffset); got != tt.runeIndex {
			t.Errorf("ByteOffsetToRuneIndex(%d) = %d, want %d", tt.byteOffset, got, tt.runeIndex)
		}
	}
	if got := RuneIndexToByteOffset(line, 8); got != -1 {
		t.Errorf("past-the-end rune index = %d, want -1", got)
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var d Debouncer
	fired := make(chan int, 4)
	for i := 1; i <= 3; i++ {
		n := i
		d.Debounce(20*time.Millisecond, func() { fired <- n })
	}

	select {
	case n := <-fired:
		if n != 3 {
			t.Errorf("debounced call = %d, want 3", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never fired")
	}

	select {
	case n := <-fired:
		t.Errorf("unexpected extra call %d", n)
	case <-time.After(60 * time.Millisecond):
	}
}
