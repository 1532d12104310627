package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityValid(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		expected bool
	}{
		{
			name:     "valid lowercase address",
			identity: "0x1111111111111111111111111111111111111111",
			expected: true,
		},
		{
			name:     "valid checksummed address",
			identity: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			expected: true,
		},
		{
			name:     "valid without 0x prefix",
			identity: "1111111111111111111111111111111111111111",
			expected: true,
		},
		{
			name:     "empty",
			identity: "",
			expected: false,
		},
		{
			name:     "too short",
			identity: "0x1111",
			expected: false,
		},
		{
			name:     "not hex",
			identity: "0xzzzz111111111111111111111111111111111111",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.identity.Valid())
		})
	}
}

func TestIdentityEqual(t *testing.T) {
	a := Identity("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	b := Identity("0xABCDEFabcdefABCDEFabcdefABCDEFabcdefABCD")
	c := Identity("0x1111111111111111111111111111111111111111")

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
}

func TestListingDescriptorValidate(t *testing.T) {
	valid := func() ListingDescriptor {
		return ListingDescriptor{
			Title:       "2019 Honda CR-V",
			Price:       decimal.RequireFromString("1.5"),
			Category:    "SUV",
			Condition:   ConditionUsed,
			CreatedDate: "2025-06-01",
			Description: "Single owner",
			ImagePath:   "uploads/crv.jpg",
		}
	}

	t.Run("valid descriptor", func(t *testing.T) {
		d := valid()
		assert.NoError(t, d.Validate())
	})

	t.Run("price at the boundaries", func(t *testing.T) {
		d := valid()
		d.Price = MinListingPrice
		assert.NoError(t, d.Validate())

		d.Price = MaxListingPrice
		assert.NoError(t, d.Validate())
	})

	tests := []struct {
		name      string
		mutate    func(*ListingDescriptor)
		wantField string
	}{
		{
			name:      "missing title",
			mutate:    func(d *ListingDescriptor) { d.Title = "" },
			wantField: "title",
		},
		{
			name:      "zero price",
			mutate:    func(d *ListingDescriptor) { d.Price = decimal.Zero },
			wantField: "price",
		},
		{
			name:      "price below minimum",
			mutate:    func(d *ListingDescriptor) { d.Price = decimal.RequireFromString("0.09") },
			wantField: "price",
		},
		{
			name:      "price above maximum",
			mutate:    func(d *ListingDescriptor) { d.Price = decimal.RequireFromString("100.01") },
			wantField: "price",
		},
		{
			name:      "missing category",
			mutate:    func(d *ListingDescriptor) { d.Category = "" },
			wantField: "category",
		},
		{
			name:      "unknown category",
			mutate:    func(d *ListingDescriptor) { d.Category = "Submarine" },
			wantField: "category",
		},
		{
			name:      "missing condition",
			mutate:    func(d *ListingDescriptor) { d.Condition = "" },
			wantField: "car_condition",
		},
		{
			name:      "unknown condition",
			mutate:    func(d *ListingDescriptor) { d.Condition = "Refurbished" },
			wantField: "car_condition",
		},
		{
			name:      "missing created date",
			mutate:    func(d *ListingDescriptor) { d.CreatedDate = "" },
			wantField: "created_date",
		},
		{
			name:      "missing description",
			mutate:    func(d *ListingDescriptor) { d.Description = "" },
			wantField: "description",
		},
		{
			name:      "missing image path",
			mutate:    func(d *ListingDescriptor) { d.ImagePath = "" },
			wantField: "image_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(&d)

			err := d.Validate()
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, IsValidCategory(category), category)
	}
	assert.False(t, IsValidCategory("Submarine"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("suv"))
}

func TestIsValidCondition(t *testing.T) {
	assert.True(t, IsValidCondition(ConditionNew))
	assert.True(t, IsValidCondition(ConditionUsed))
	assert.False(t, IsValidCondition("used"))
	assert.False(t, IsValidCondition(""))
}
