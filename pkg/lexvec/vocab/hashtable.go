package vocab

// empty is the sentinel stored in unoccupied hash table slots.
const empty int32 = -1

// hashtable is a fixed-size, open-addressed, linearly-probed map from
// token hash to vocabulary index. The find operation is reused both
// during the initial corpus scan and on every pair-file lookup and
// training-time token resolution, so — per the design notes this
// package is grounded on — it is a flat array with an explicit probe
// loop, not a general-purpose map: the probe sequence and sentinel
// value are part of the observable behavior a caller may depend on
// (e.g. stable re-insertion order after sort-and-reduce), and a
// built-in map would hide that.
type hashtable struct {
	slots []int32
}

func newHashtable(size int) *hashtable {
	h := &hashtable{slots: make([]int32, size)}
	h.reset()
	return h
}

// reset clears every slot to empty. Required before (re)population, per
// the data model: "H must be re-initialized to empty before population."
func (h *hashtable) reset() {
	for i := range h.slots {
		h.slots[i] = empty
	}
}

// polyHash computes the polynomial hash h = (h*257 + byte) mod len(slots).
func (h *hashtable) polyHash(word string) uint64 {
	var acc uint64
	m := uint64(len(h.slots))
	for i := 0; i < len(word); i++ {
		acc = (acc*257 + uint64(word[i])) % m
	}
	return acc
}

// probe returns the slot index containing word's vocabulary index, probing
// linearly with step 1 (wrapping modulo table size) from the hash's home
// slot. If word is not present, it returns the first empty slot on the
// probe sequence, where a fresh entry should be inserted. occupied reports
// whether a slot matching word was found; a slot matches when wordAt of
// its stored index equals word (the hash table stores indices, not
// strings).
func (h *hashtable) probe(word string, wordAt func(idx int32) string) (slot int, occupied bool) {
	n := len(h.slots)
	slot = int(h.polyHash(word))
	for {
		v := h.slots[slot]
		if v == empty {
			return slot, false
		}
		if wordAt(v) == word {
			return slot, true
		}
		slot++
		if slot == n {
			slot = 0
		}
	}
}
