package domain

import (
	"context"
	"errors"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Element is an evaluation category page. Elements are seeded by migration and read-only at runtime.
type Element struct {
	ID          int64  `json:"id,string"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

type ElementRepository interface {
	Fetch(ctx context.Context) ([]Element, error)
	GetByID(ctx context.Context, id int64) (*Element, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type ElementUsecase interface {
	ListElements(ctx context.Context) ([]Element, error)
	GetElement(ctx context.Context, id int64) (*Element, error)
	RelatedElements(ctx context.Context, id int64) ([]Element, error)
}

// RelatedIDs returns the previous, next and next+1 ids around id. The previous slot of
// the first element wraps to maxID. The element itself and duplicates are left out.
func RelatedIDs(id, maxID int64) []int64 {
	prev := id - 1
	if id == 1 {
		prev = maxID
	}

	ids := make([]int64, 0, 3)
	for _, candidate := range []int64{prev, id + 1, id + 2} {
		if candidate < 1 || candidate == id {
			continue
		}
		dup := false
		for _, seen := range ids {
			if seen == candidate {
				dup = true
				break
			}
		}
		if !dup {
			ids = append(ids, candidate)
		}
	}
	return ids
}

// PickElements returns the elements matching ids, in ids order. Missing ids are skipped.
func PickElements(all []Element, ids []int64) []Element {
	byID := make(map[int64]Element, len(all))
	for _, e := range all {
		byID[e.ID] = e
	}

	out := make([]Element, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
