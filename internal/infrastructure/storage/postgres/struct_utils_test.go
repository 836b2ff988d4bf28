package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
)

type mockCatalog struct {
	entity.BaseCatalog
	Code    string  `db:"code" json:"code"`
	Name    string  `db:"name" json:"name"`
	Months  float64 `db:"warranty_months" json:"warrantyMonths"`
	Ignored string  `db:"-" json:"ignored"`
	NoTag   string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "deletion_mark", "version", "attributes", "code", "name", "warranty_months"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}

	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code:    "TEST",
		Name:    "Test Name",
		Months:  6.5,
		Ignored: "skip me",
		NoTag:   "skip me too",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, 6.5, m["warranty_months"])

	_, hasIgnored := m["-"]
	assert.False(t, hasIgnored)
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Code: "PTR"}
	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("string"))
}
