// ABOUTME: Immutable interned string table shared by the compact graph
// ABOUTME: Maps a u32 index to the underlying string without copying

package graph

// StringTable is an immutable, shared table of interned strings.
// Built once at load time from the snapshot's flat string array and
// referenced by index from node names and edge names thereafter.
type StringTable struct {
	strings []string
}

// NewStringTable builds a StringTable over an existing string slice.
// The slice is retained, not copied; callers must not mutate it after
// handing it to NewStringTable.
func NewStringTable(strings []string) *StringTable {
	return &StringTable{strings: strings}
}

// Len returns the number of interned strings.
func (t *StringTable) Len() int {
	return len(t.strings)
}

// At returns the string at idx, or "" with ok=false if idx is out of
// range.
func (t *StringTable) At(idx uint32) (string, bool) {
	if int(idx) >= len(t.strings) {
		return "", false
	}
	return t.strings[idx], true
}
