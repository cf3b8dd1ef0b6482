package models

import "fmt"

// Linked is implemented by entities that keep their sibling order through a
// previous-pointer. A PreviousID of 0 marks the first sibling.
type Linked interface {
	comparable
	GetID() int64
	GetPreviousID() int64
	SetPreviousID(int64)
}

// insertAt places item at index and links it into the chain. It returns the
// new slice and the sibling whose previous-pointer now references item, if any.
func insertAt[T Linked](items []T, index int, item T) ([]T, T, error) {
	var none T
	if index < 0 || index > len(items) {
		return items, none, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, len(items))
	}
	if item.GetID() == 0 {
		return items, none, fmt.Errorf("%w: identifier 0 is reserved", ErrInconsistentOrderState)
	}
	for _, existing := range items {
		if existing.GetID() == item.GetID() {
			return items, none, fmt.Errorf("%w: identifier %d already present", ErrInconsistentOrderState, item.GetID())
		}
	}

	if index == 0 {
		item.SetPreviousID(0)
	} else {
		item.SetPreviousID(items[index-1].GetID())
	}

	items = append(items, none)
	copy(items[index+1:], items[index:])
	items[index] = item

	if index+1 < len(items) {
		successor := items[index+1]
		successor.SetPreviousID(item.GetID())
		return items, successor, nil
	}
	return items, none, nil
}

// appendLinked adds item after the current last sibling.
func appendLinked[T Linked](items []T, item T) ([]T, error) {
	items, _, err := insertAt(items, len(items), item)
	return items, err
}

// removeLinked takes item out of the chain. The successor, if any, inherits
// the removed item's previous-pointer and is returned so it can be persisted.
func removeLinked[T Linked](items []T, item T) ([]T, T, error) {
	var none T
	index := -1
	for i, existing := range items {
		if existing.GetID() == item.GetID() {
			index = i
			break
		}
	}
	if index < 0 {
		return items, none, fmt.Errorf("%w: %d", ErrIdentifierNotFound, item.GetID())
	}

	removed := items[index]
	items = append(items[:index], items[index+1:]...)

	if index < len(items) {
		successor := items[index]
		if successor.GetID() == removed.GetPreviousID() {
			return items, none, fmt.Errorf("%w: %d would point at itself", ErrInconsistentOrderState, successor.GetID())
		}
		successor.SetPreviousID(removed.GetPreviousID())
		return items, successor, nil
	}
	return items, none, nil
}

// OrderByPrevious sorts siblings by following their previous-pointers,
// starting from the one whose PreviousID is 0.
func OrderByPrevious[T Linked](items []T) ([]T, error) {
	if len(items) == 0 {
		return items, nil
	}

	byPrevious := make(map[int64]T, len(items))
	for _, item := range items {
		if _, dup := byPrevious[item.GetPreviousID()]; dup {
			return nil, fmt.Errorf("%w: two entities follow %d", ErrInconsistentOrderState, item.GetPreviousID())
		}
		byPrevious[item.GetPreviousID()] = item
	}

	ordered := make([]T, 0, len(items))
	seen := make(map[int64]bool, len(items))
	var previous int64
	for {
		next, ok := byPrevious[previous]
		if !ok {
			break
		}
		if seen[next.GetID()] {
			return nil, fmt.Errorf("%w: cycle at %d", ErrInconsistentOrderState, next.GetID())
		}
		seen[next.GetID()] = true
		ordered = append(ordered, next)
		previous = next.GetID()
	}

	if len(ordered) != len(items) {
		return nil, fmt.Errorf("%w: %d of %d entities unreachable from the first", ErrInconsistentOrderState, len(items)-len(ordered), len(items))
	}
	return ordered, nil
}

// VerifyOrder checks that the previous-pointers of items describe exactly
// their slice order.
func VerifyOrder[T Linked](items []T) error {
	var previous int64
	for i, item := range items {
		if item.GetPreviousID() != previous {
			return fmt.Errorf("%w: position %d (id %d) points at %d, want %d",
				ErrInconsistentOrderState, i, item.GetID(), item.GetPreviousID(), previous)
		}
		previous = item.GetID()
	}
	return nil
}
