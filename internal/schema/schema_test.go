package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linal/internal/schema"
	"linal/internal/value"
)

func sampleSchema() schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: value.TypeInt()},
		{Name: "name", Type: value.TypeString(), Nullable: true},
		{Name: "score", Type: value.TypeFloat()},
	}}
}

func TestValidateAcceptsPromotionAndNullable(t *testing.T) {
	s := sampleSchema()
	err := s.Validate([]value.Value{value.Int(1), value.Null, value.Int(5)})
	assert.NoError(t, err)
}

func TestValidateRejectsNullInNonNullable(t *testing.T) {
	s := sampleSchema()
	err := s.Validate([]value.Value{value.Null, value.Null, value.Int(5)})
	assert.Error(t, err)
}

func TestValidateRejectsWrongFieldCount(t *testing.T) {
	s := sampleSchema()
	err := s.Validate([]value.Value{value.Int(1), value.Null})
	assert.Error(t, err)
}

func TestWithColumnAndRenamed(t *testing.T) {
	s := sampleSchema()
	extended := s.WithColumn(schema.Field{Name: "active", Type: value.TypeBool()})
	assert.Equal(t, 4, len(extended.Fields))

	renamed := extended.Renamed("name", "full_name")
	_, ok := renamed.Field("full_name")
	assert.True(t, ok)
}

func TestWithoutColumn(t *testing.T) {
	s := sampleSchema()
	trimmed := s.WithoutColumn("name")
	assert.Equal(t, -1, trimmed.IndexOf("name"))
}
