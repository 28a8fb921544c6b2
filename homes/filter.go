package homes

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/realtor-go/apperror"
)

// ListHomesQuery holds the raw query parameters of GET /home.
// An empty string means the parameter was not supplied.
type ListHomesQuery struct {
	City         string
	MinPrice     string
	MaxPrice     string
	PropertyType string
}

// PriceRange bounds the price of a home. Each bound is independently optional.
type PriceRange struct {
	Gte *decimal.Decimal
	Lte *decimal.Decimal
}

// Filter constrains a home search. A nil field means "no constraint";
// a present field is never represented by its zero value.
type Filter struct {
	City         *string
	Price        *PriceRange
	PropertyType *PropertyType
}

// BuildFilter turns query parameters into a Filter containing exactly the
// constraints that were supplied. Price is set iff minPrice or maxPrice is
// present, and holds only the bound(s) given.
func BuildFilter(q ListHomesQuery) (Filter, error) {
	var f Filter

	if q.MinPrice != "" || q.MaxPrice != "" {
		price := &PriceRange{}
		if q.MinPrice != "" {
			gte, err := parsePrice("minPrice", q.MinPrice)
			if err != nil {
				return Filter{}, err
			}
			price.Gte = &gte
		}
		if q.MaxPrice != "" {
			lte, err := parsePrice("maxPrice", q.MaxPrice)
			if err != nil {
				return Filter{}, err
			}
			price.Lte = &lte
		}
		f.Price = price
	}

	if q.City != "" {
		city := q.City
		f.City = &city
	}

	if q.PropertyType != "" {
		pt, err := ParsePropertyType(q.PropertyType)
		if err != nil {
			return Filter{}, apperror.NewValidationError(
				fmt.Sprintf("propertyType must be one of %s, %s", PropertyTypeResidential, PropertyTypeCondo), err)
		}
		f.PropertyType = &pt
	}

	return f, nil
}

func parsePrice(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, apperror.NewValidationError(fmt.Sprintf("%s must be a decimal number", name), err)
	}
	return d, nil
}

// Fields renders the filter as a mapping holding only the present keys,
// e.g. {"price": {"gte": 100000}}. Used for logging.
func (f Filter) Fields() map[string]interface{} {
	out := map[string]interface{}{}
	if f.City != nil {
		out["city"] = *f.City
	}
	if f.Price != nil {
		price := map[string]interface{}{}
		if f.Price.Gte != nil {
			price["gte"] = f.Price.Gte.InexactFloat64()
		}
		if f.Price.Lte != nil {
			price["lte"] = f.Price.Lte.InexactFloat64()
		}
		out["price"] = price
	}
	if f.PropertyType != nil {
		out["propertyType"] = *f.PropertyType
	}
	return out
}

// where renders the filter as a SQL WHERE clause over the `homes h` alias.
// It returns an empty string when the filter has no constraints.
func (f Filter) where() (string, []interface{}) {
	var clauses []string
	var args []interface{}
	add := func(expr string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}

	if f.City != nil {
		add("h.city = $%d", *f.City)
	}
	if f.Price != nil {
		if f.Price.Gte != nil {
			add("h.price >= $%d", f.Price.Gte.InexactFloat64())
		}
		if f.Price.Lte != nil {
			add("h.price <= $%d", f.Price.Lte.InexactFloat64())
		}
	}
	if f.PropertyType != nil {
		add("h.property_type = $%d", string(*f.PropertyType))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
