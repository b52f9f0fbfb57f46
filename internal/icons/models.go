package icons

import (
	"fmt"
	"sort"
	"time"

	"emblem/internal/validate"
)

// TargetSizes is the canonical resolution set. Every stored icon carries one
// render per entry; partial sets are never persisted.
var TargetSizes = []int{16, 48, 128}

// DefaultSelection is the sentinel meaning "no custom icon, use the built-in".
const DefaultSelection = "default"

// Sizes maps a target resolution to a base64-encoded PNG rendered at that
// resolution.
type Sizes map[int]string

// Assets is the output of a completed upload transform: the original bytes in
// portable form plus the full canonical size set.
type Assets struct {
	SourceImage string             `json:"source_image"`
	MediaKind   validate.MediaKind `json:"media_kind"`
	Sizes       Sizes              `json:"sizes"`
}

// Record is a stored custom icon. Records are immutable once stored; changing
// one means removing it and adding a replacement.
type Record struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	MediaKind   validate.MediaKind `json:"media_kind"`
	SourceImage string             `json:"source_image"`
	Sizes       Sizes              `json:"sizes"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CollectionState is a snapshot of the stored collection: the records in
// insertion order, the active selection, and a revision that increases with
// every committed mutation.
type CollectionState struct {
	Records  []Record `json:"records"`
	Active   string   `json:"active"`
	Revision int64    `json:"revision"`
}

// ActiveRecord returns the record matching the active selection, or nil when
// the default sentinel is active.
func (s *CollectionState) ActiveRecord() *Record {
	if s.Active == DefaultSelection {
		return nil
	}
	for i := range s.Records {
		if s.Records[i].ID == s.Active {
			return &s.Records[i]
		}
	}
	return nil
}

// CheckSizes verifies that a size set contains exactly the target resolutions.
func CheckSizes(sizes Sizes) error {
	if len(sizes) != len(TargetSizes) {
		return fmt.Errorf("icon sizes: expected %d renders, got %d", len(TargetSizes), len(sizes))
	}
	for _, size := range TargetSizes {
		render, ok := sizes[size]
		if !ok {
			return fmt.Errorf("icon sizes: missing %dpx render", size)
		}
		if render == "" {
			return fmt.Errorf("icon sizes: empty %dpx render", size)
		}
	}
	return nil
}

func mediaKindFromString(kind string) validate.MediaKind {
	return validate.MediaKind(kind)
}

// SortedSizes returns the resolutions present in a size set in ascending order.
func SortedSizes(sizes Sizes) []int {
	out := make([]int, 0, len(sizes))
	for size := range sizes {
		out = append(out, size)
	}
	sort.Ints(out)
	return out
}
