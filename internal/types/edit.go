package types

// EditInfo describes a single change applied to the buffer.
type EditInfo struct {
	Start  Position // Where the change begins
	OldEnd Position // End of the replaced text before the edit
	NewEnd Position // End of the inserted text after the edit
}
