// Package reconcile keeps a goal's tasks in step with the lines of its
// Details text.
package reconcile

import "fmt"

// OpKind is the kind of an edit operation
type OpKind int

const (
	OpKeep OpKind = iota
	OpUpdate
	OpInsert
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpKeep:
		return "keep"
	case OpUpdate:
		return "update"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one step of the edit script produced by Diff.
//
// OldIndex is the position in the old sequence; for an Insert it is the
// position after the last consumed old line. NewIndex is the position in the
// new sequence; because every consumed new line leaves exactly one entry
// behind, it is also the position in the partially edited collection where
// the operation applies (for a Delete, where the deleted entry currently sits).
type Op struct {
	Kind     OpKind
	OldIndex int
	NewIndex int
	Text     string
}

func (o Op) String() string {
	switch o.Kind {
	case OpInsert:
		return fmt.Sprintf("insert(%d, %q)", o.NewIndex, o.Text)
	case OpDelete:
		return fmt.Sprintf("delete(%d)", o.OldIndex)
	default:
		return fmt.Sprintf("%s(%d->%d, %q)", o.Kind, o.OldIndex, o.NewIndex, o.Text)
	}
}

// Diff compares oldLines with newLines in one greedy forward pass. Equal
// lines are kept; on divergence the side with more remaining lines loses or
// gains one line, and equal remaining counts pair the lines up as an update.
// Lines that moved are reported as updates, inserts and deletes.
func Diff(oldLines, newLines []string) []Op {
	ops := make([]Op, 0, max(len(oldLines), len(newLines)))
	i, j := 0, 0
	for i < len(oldLines) || j < len(newLines) {
		if i < len(oldLines) && j < len(newLines) && oldLines[i] == newLines[j] {
			ops = append(ops, Op{Kind: OpKeep, OldIndex: i, NewIndex: j, Text: newLines[j]})
			i++
			j++
			continue
		}

		remainingOld := len(oldLines) - i
		remainingNew := len(newLines) - j
		switch {
		case remainingOld == remainingNew:
			ops = append(ops, Op{Kind: OpUpdate, OldIndex: i, NewIndex: j, Text: newLines[j]})
			i++
			j++
		case remainingNew > remainingOld:
			ops = append(ops, Op{Kind: OpInsert, OldIndex: i, NewIndex: j, Text: newLines[j]})
			j++
		default:
			ops = append(ops, Op{Kind: OpDelete, OldIndex: i, NewIndex: j, Text: oldLines[i]})
			i++
		}
	}
	return ops
}

// Counts tallies ops by kind
func Counts(ops []Op) map[OpKind]int {
	counts := make(map[OpKind]int, 4)
	for _, op := range ops {
		counts[op.Kind]++
	}
	return counts
}

// Changed reports whether ops contain anything besides keeps
func Changed(ops []Op) bool {
	for _, op := range ops {
		if op.Kind != OpKeep {
			return true
		}
	}
	return false
}
