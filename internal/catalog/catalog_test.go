package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacity(t *testing.T) {
	cat := New(map[string]int{"Sports Field": 12, "Meeting Room": 20}, 10)

	assert.Equal(t, 12, cat.Capacity("Sports Field"))
	assert.Equal(t, 20, cat.Capacity("Meeting Room"))
	// unknown resources fall back to the default instead of erroring
	assert.Equal(t, 10, cat.Capacity("Rooftop"))
}

func TestCapacityIsCaseInsensitive(t *testing.T) {
	// config loaders hand the table over with lowercased keys
	cat := New(map[string]int{"meeting room": 20, "Computer Lab": 16}, 10)

	assert.Equal(t, 20, cat.Capacity("Meeting Room"))
	assert.Equal(t, 20, cat.Capacity("MEETING ROOM"))
	assert.Equal(t, 16, cat.Capacity("computer lab"))
}

func TestResourcesReturnsCopy(t *testing.T) {
	cat := New(map[string]int{"Sports Field": 12}, 10)

	resources := cat.Resources()
	resources["sports field"] = 1

	assert.Equal(t, 12, cat.Capacity("Sports Field"))
}
