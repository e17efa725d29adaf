package api

// DefaultPageSize matches the moderation grid, 3x3.
const DefaultPageSize = 9

// paginate clamps a 1-based page index into range and returns the
// slice offsets for it. totalPages is at least 1 so an empty result
// still lands on a valid page instead of stranding the viewer.
func paginate(total, page, size int) (clamped, offset, limit, totalPages int) {
	if size < 1 {
		size = DefaultPageSize
	}
	totalPages = (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset = (page - 1) * size
	limit = size
	if offset > total {
		offset = total
	}
	return page, offset, limit, totalPages
}
