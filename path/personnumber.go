package path

// PersonNumberFrame is one entry of the person-number stack (spec.md §4.2):
// a grammatical person-number value that governs text conjugation for
// every node item pushed after it, until the branch that introduced it is
// fully unwound.
type PersonNumberFrame struct {
	PersonNumber     string
	NextItemListSize int
	Prev             *PersonNumberFrame
}

// PrependPersonNumber pushes a new person-number frame, recording the
// nextItemList size at the moment it takes effect so UnwindPersonNumberList
// knows when its scope has ended.
func PrependPersonNumber(prev *PersonNumberFrame, personNumber string, nextItemListSize int) *PersonNumberFrame {
	return &PersonNumberFrame{PersonNumber: personNumber, NextItemListSize: nextItemListSize, Prev: prev}
}

// UnwindPersonNumberList pops frames whose governing branch has been fully
// consumed: a frame is popped once the path's current nextItemList size has
// grown back up to (or past) the size recorded when the frame was pushed.
func UnwindPersonNumberList(list *PersonNumberFrame, currentSize int) *PersonNumberFrame {
	for list != nil && currentSize >= list.NextItemListSize {
		list = list.Prev
	}
	return list
}

// HeadPersonNumber returns the currently governing person-number, or the
// empty string if no frame is active.
func HeadPersonNumber(list *PersonNumberFrame) string {
	if list == nil {
		return ""
	}
	return list.PersonNumber
}
