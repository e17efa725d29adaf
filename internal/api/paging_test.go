package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateTwentyItemsNineAPage(t *testing.T) {
	page, offset, limit, totalPages := paginate(20, 1, 9)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 9, limit)
	assert.Equal(t, 3, totalPages)

	page, offset, _, _ = paginate(20, 3, 9)
	assert.Equal(t, 3, page)
	assert.Equal(t, 18, offset) // items 19-20
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	page, offset, _, totalPages := paginate(20, 99, 9)
	assert.Equal(t, 3, page)
	assert.Equal(t, 18, offset)
	assert.Equal(t, 3, totalPages)

	page, offset, _, _ = paginate(20, 0, 9)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, offset)

	page, offset, _, _ = paginate(20, -5, 9)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, offset)
}

func TestPaginateEmptySet(t *testing.T) {
	page, offset, _, totalPages := paginate(0, 4, 9)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 1, totalPages)
}

func TestPaginateExactMultiple(t *testing.T) {
	_, _, _, totalPages := paginate(18, 1, 9)
	assert.Equal(t, 2, totalPages)
}
