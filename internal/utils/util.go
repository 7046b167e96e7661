package utils

import (
	"sync"
	"time"
	"unicode/utf8"
)

// RuneIndexToByteOffset converts a rune index to a byte offset in a line.
// Returns -1 if runeIndex is past the end of the line.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	if currentRune == runeIndex {
		return len(line)
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a line.
// Offsets inside a multi-byte rune resolve to that rune's index.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(line) {
		return utf8.RuneCount(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// Debouncer coalesces bursts of calls into one call after a quiet period.
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce schedules fn after duration, canceling any pending call.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Stop cancels a pending call, if any.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
