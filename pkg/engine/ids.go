package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formcheck/pkg/form"
)

// IDGenerator produces candidate identifiers for repaired documents. The
// engine checks every candidate against the ids already in use, so
// implementations only need to be collision-resistant, not collision-free.
type IDGenerator interface {
	// FieldID returns an id for the field at position (zero based) within
	// its parent list.
	FieldID(position int) string
	// FormID returns a MenuID for a document that has none.
	FormID() string
}

// UUIDGenerator derives suffixes from version 7 UUIDs, which lead with a
// millisecond timestamp. It is safe for concurrent use.
type UUIDGenerator struct{}

// FieldID implements IDGenerator.
func (UUIDGenerator) FieldID(position int) string {
	return fmt.Sprintf("Field_%d_%s", position+1, timeOrderedSuffix())
}

// FormID implements IDGenerator.
func (UUIDGenerator) FormID() string {
	return "FORM_" + timeOrderedSuffix()
}

func timeOrderedSuffix() string {
	id, err := uuid.NewV7()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

// idAllocator hands out generator ids that are unique across the document.
type idAllocator struct {
	gen   IDGenerator
	taken map[string]struct{}
}

func newIDAllocator(gen IDGenerator, root map[string]any) *idAllocator {
	a := &idAllocator{gen: gen, taken: make(map[string]struct{})}
	walkFieldMaps(root[fieldsKey], func(field map[string]any, _ int) {
		if key, ok := idKey(field[idKeyName]); ok {
			a.taken[key] = struct{}{}
		}
	})
	return a
}

func (a *idAllocator) field(position int) string {
	return a.claim(a.gen.FieldID(position))
}

func (a *idAllocator) form() string {
	return a.gen.FormID()
}

func (a *idAllocator) claim(candidate string) string {
	id := candidate
	for n := 2; ; n++ {
		if _, used := a.taken[id]; !used {
			break
		}
		id = candidate + "_" + strconv.Itoa(n)
	}
	a.taken[id] = struct{}{}
	return id
}

// idKey normalises an id value for comparison. Blank ids have no key.
func idKey(value any) (string, bool) {
	if form.IsBlank(value) {
		return "", false
	}
	if s, ok := form.Stringify(value); ok {
		return s, true
	}
	return fmt.Sprint(value), true
}
