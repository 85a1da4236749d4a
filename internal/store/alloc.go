package store

import "github.com/fntrack/fntrack/pkg/fnid"

// Identifier allocation scans persisted records and returns max+1. There is
// no counter file: two branches that allocate independently will collide
// after a merge, which the validator surfaces as a duplicate-identifier
// error; the remedy is re-running allocation on one side. Both functions
// are pure over the current snapshot.

// NextEpicNum returns the next unused epic number, or 1 if no epics exist.
func (s *Store) NextEpicNum() (int, error) {
	ids, err := s.epicIDs()
	if err != nil {
		return 0, err
	}
	max := 0
	for _, id := range ids {
		if id.Num > max {
			max = id.Num
		}
	}
	return max + 1, nil
}

// NextTaskSeq returns the next unused sequence number within an epic, or 1
// if the epic has no tasks. Slugs never affect numeric ordering.
func (s *Store) NextTaskSeq(epicID string) (int, error) {
	epic, err := fnid.ParseEpic(epicID)
	if err != nil {
		return 0, err
	}
	ids, err := s.taskIDs()
	if err != nil {
		return 0, err
	}
	max := 0
	for _, id := range ids {
		if fnid.SameEpic(id.Epic, epic) && id.Seq > max {
			max = id.Seq
		}
	}
	return max + 1, nil
}
