package homes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/realtor-go/apperror"
)

func TestBuildFilterScenarios(t *testing.T) {
	cases := []struct {
		name  string
		query ListHomesQuery
		want  map[string]interface{}
	}{
		{"min only", ListHomesQuery{MinPrice: "100000"}, map[string]interface{}{
			"price": map[string]interface{}{"gte": 100000.0},
		}},
		{"max only", ListHomesQuery{MaxPrice: "300000"}, map[string]interface{}{
			"price": map[string]interface{}{"lte": 300000.0},
		}},
		{"both bounds", ListHomesQuery{MinPrice: "100000", MaxPrice: "300000"}, map[string]interface{}{
			"price": map[string]interface{}{"gte": 100000.0, "lte": 300000.0},
		}},
		{"neither", ListHomesQuery{}, map[string]interface{}{}},
		{"decimal bound", ListHomesQuery{MinPrice: "99999.50"}, map[string]interface{}{
			"price": map[string]interface{}{"gte": 99999.5},
		}},
		{"everything", ListHomesQuery{City: "Toronto", MinPrice: "1", MaxPrice: "2", PropertyType: "CONDO"}, map[string]interface{}{
			"city":         "Toronto",
			"price":        map[string]interface{}{"gte": 1.0, "lte": 2.0},
			"propertyType": PropertyTypeCondo,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := BuildFilter(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Fields())
		})
	}
}

// Every combination of present/absent inputs yields exactly the present fields.
func TestBuildFilterAllCombinations(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		hasCity, hasMin, hasMax, hasType := mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0
		t.Run(fmt.Sprintf("mask=%04b", mask), func(t *testing.T) {
			var q ListHomesQuery
			if hasCity {
				q.City = "Ottawa"
			}
			if hasMin {
				q.MinPrice = "100"
			}
			if hasMax {
				q.MaxPrice = "200"
			}
			if hasType {
				q.PropertyType = "RESIDENTIAL"
			}

			f, err := BuildFilter(q)
			require.NoError(t, err)

			assert.Equal(t, hasCity, f.City != nil)
			assert.Equal(t, hasType, f.PropertyType != nil)
			assert.Equal(t, hasMin || hasMax, f.Price != nil)
			if f.Price != nil {
				assert.Equal(t, hasMin, f.Price.Gte != nil)
				assert.Equal(t, hasMax, f.Price.Lte != nil)
			}

			_, cityKey := f.Fields()["city"]
			_, priceKey := f.Fields()["price"]
			_, typeKey := f.Fields()["propertyType"]
			assert.Equal(t, hasCity, cityKey)
			assert.Equal(t, hasMin || hasMax, priceKey)
			assert.Equal(t, hasType, typeKey)
		})
	}
}

func TestBuildFilterRejectsMalformedInput(t *testing.T) {
	cases := map[string]ListHomesQuery{
		"min not a number": {MinPrice: "cheap"},
		"max not a number": {MaxPrice: "12abc"},
		"unknown type":     {PropertyType: "CASTLE"},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildFilter(q)
			assert.True(t, apperror.IsValidationError(err), "got %v", err)
		})
	}
}

func TestFilterWhere(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		clause, args := Filter{}.where()
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("all constraints", func(t *testing.T) {
		f, err := BuildFilter(ListHomesQuery{City: "Toronto", MinPrice: "100000", MaxPrice: "300000", PropertyType: "CONDO"})
		require.NoError(t, err)

		clause, args := f.where()
		assert.Equal(t, "WHERE h.city = $1 AND h.price >= $2 AND h.price <= $3 AND h.property_type = $4", clause)
		assert.Equal(t, []interface{}{"Toronto", 100000.0, 300000.0, "CONDO"}, args)
	})

	t.Run("upper bound only", func(t *testing.T) {
		f, err := BuildFilter(ListHomesQuery{MaxPrice: "300000"})
		require.NoError(t, err)

		clause, args := f.where()
		assert.Equal(t, "WHERE h.price <= $1", clause)
		assert.Equal(t, []interface{}{300000.0}, args)
	})
}
