package display

import "sort"

// Direction of the transition animation between two rotation items.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Image is the display-ready projection of an approved photo.
type Image struct {
	ID            string `json:"id"`
	Path          string `json:"path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	SubmitterName string `json:"submitter_name,omitempty"`
	Caption       string `json:"caption,omitempty"`
	DisplayOrder  *int   `json:"display_order,omitempty"`
}

// SortImages orders images by display order ascending. An image without
// an order sorts after every image that has one. Ties keep fetch order.
func SortImages(imgs []Image) {
	sort.SliceStable(imgs, func(i, j int) bool {
		a, b := imgs[i].DisplayOrder, imgs[j].DisplayOrder
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

// Rotation is the cyclic pointer over the ordered image list. All
// methods are no-ops on an empty list.
type Rotation struct {
	Images    []Image
	Current   int
	Previous  int
	Direction Direction
}

// InferDirection classifies a move from index i to j in a cycle of n as
// the visually natural direction: wrapping last->0 is forward, 0->last
// is backward, otherwise the sign of the delta decides.
func InferDirection(from, to, n int) Direction {
	if n > 1 {
		if from == n-1 && to == 0 {
			return Forward
		}
		if from == 0 && to == n-1 {
			return Backward
		}
	}
	if to < from {
		return Backward
	}
	return Forward
}

func (r *Rotation) move(to int) {
	n := len(r.Images)
	r.Previous = r.Current
	r.Current = to
	r.Direction = InferDirection(r.Previous, r.Current, n)
}

// Next advances the pointer one step forward, wrapping at the end.
func (r *Rotation) Next() {
	n := len(r.Images)
	if n == 0 {
		return
	}
	r.move((r.Current + 1) % n)
}

// Prev moves the pointer one step back, wrapping at the start.
func (r *Rotation) Prev() {
	n := len(r.Images)
	if n == 0 {
		return
	}
	r.move((r.Current - 1 + n) % n)
}

// SetImages swaps in a fresh image list, keeping the pointer in range.
func (r *Rotation) SetImages(imgs []Image) {
	r.Images = imgs
	if r.Current >= len(imgs) {
		r.Current = 0
	}
	if r.Previous >= len(imgs) {
		r.Previous = 0
	}
}

// CurrentImage returns the image under the pointer, or nil when the
// rotation is empty.
func (r *Rotation) CurrentImage() *Image {
	if len(r.Images) == 0 {
		return nil
	}
	return &r.Images[r.Current]
}
