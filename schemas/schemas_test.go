package schemas

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/coffee-outlets/models"
)

func fieldTypes(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected a ValidationError, got %v", err)
	out := make(map[string]string, len(verr.Errors))
	for _, fe := range verr.Errors {
		require.GreaterOrEqual(t, len(fe.Loc), 2)
		out[fe.Loc[1].(string)] = fe.Type
	}
	return out
}

func TestFlagJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Flag
		wantErr bool
	}{
		{"1", true, false},
		{"0", false, false},
		{`"1"`, true, false},
		{`"0"`, false, false},
		{"true", true, false},
		{"false", false, false},
		{"2", false, true},
		{`"yes"`, false, true},
		{"1.0", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f Flag
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}

	out, err := json.Marshal(struct {
		IsOpen Flag `json:"is_open"`
	}{true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_open":1}`, string(out))
}

func TestDecodeOutletCreate(t *testing.T) {
	var in OutletCreate
	err := Decode([]byte(`{"name":"Westlands","location":"Sarit Centre","city":"Nairobi","county":"Nairobi","is_open":1,"rating":4.5,"unknown":"ignored"}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "Westlands", in.Name)
	require.NotNil(t, in.IsOpen)
	assert.True(t, bool(*in.IsOpen))
	require.NotNil(t, in.Rating)
	assert.Equal(t, "4.5", in.Rating.String())
	assert.Nil(t, in.StreetAddress)

	row := in.ToRow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, row.IsOpen)
	assert.True(t, row.Rating.Valid)
	require.NotNil(t, row.LastInspectedAt)
}

func TestDecodeReportsEveryTypeError(t *testing.T) {
	var in OutletCreate
	err := Decode([]byte(`{"name":"Karen","location":"Karen Hub","city":"Nairobi","county":"Nairobi","is_open":"open","rating":"five"}`), &in)
	require.Error(t, err)

	types := fieldTypes(t, err)
	assert.Len(t, types, 2)
	assert.Equal(t, "int_parsing", types["is_open"])
	assert.Equal(t, "decimal_parsing", types["rating"])
}

func TestDecodeConstraintErrors(t *testing.T) {
	var in OutletCreate
	err := Decode([]byte(`{"name":"K","location":"","city":"Nairobi","is_open":0,"rating":5.5,"phone_number":"12"}`), &in)
	require.Error(t, err)

	types := fieldTypes(t, err)
	assert.Equal(t, "string_too_short", types["name"])
	assert.Equal(t, "missing", types["location"])
	assert.Equal(t, "missing", types["county"])
	assert.Equal(t, "less_than_equal", types["rating"])
	assert.Equal(t, "string_too_short", types["phone_number"])
	assert.NotContains(t, types, "is_open")
	assert.NotContains(t, types, "city")
}

func TestDecodeRatingPlaces(t *testing.T) {
	var in OutletCreate
	err := Decode([]byte(`{"name":"CBD","location":"Kenyatta Ave","city":"Nairobi","county":"Nairobi","is_open":1,"rating":4.25}`), &in)
	require.Error(t, err)
	assert.Equal(t, "decimal_max_places", fieldTypes(t, err)["rating"])
}

func TestDecodeNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `"text"`, `null`, `{`, ``} {
		var in OutletCreate
		err := Decode([]byte(body), &in)
		require.Error(t, err, body)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, []interface{}{SourceBody}, verr.Errors[0].Loc)
		assert.Equal(t, "model_attributes_type", verr.Errors[0].Type)
	}
}

func TestMenuItemDefaults(t *testing.T) {
	in := NewMenuItemCreate()
	err := Decode([]byte(`{"menu_item_name":"Americano","price":250,"is_available":true}`), &in)
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, in.Currency)
	assert.False(t, in.HasDairy)
	assert.False(t, in.IsSeasonal)

	row := in.ToRow(3)
	assert.Equal(t, uint(3), row.OutletID)
	assert.True(t, row.IsAvailable)
	assert.Equal(t, "250", row.Price.String())
}

func TestOrderCreateProductIndex(t *testing.T) {
	var in OrderCreate
	err := Decode([]byte(`{"product_ids":[4,0,9]}`), &in)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, []interface{}{SourceBody, "product_ids", 1}, verr.Errors[0].Loc)
	assert.Equal(t, "greater_than", verr.Errors[0].Type)
	assert.Equal(t, []string{"product_ids"}, verr.Fields())
}

func TestOutletFromRow(t *testing.T) {
	street := "Waiyaki Way"
	row := &models.Outlet{
		ID:            7,
		Name:          "Westlands",
		Location:      "Sarit Centre",
		City:          "Nairobi",
		County:        "Nairobi",
		StreetAddress: &street,
		Rating:        decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
		IsOpen:        1,
	}

	out, err := OutletFromRow(row)
	require.NoError(t, err)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"name": "Westlands",
		"location": "Sarit Centre",
		"city": "Nairobi",
		"county": "Nairobi",
		"street_address": "Waiyaki Way",
		"phone_number": null,
		"rating": 4.5,
		"is_open": 1,
		"opening_time": null,
		"closing_time": null,
		"last_inspected_at": null
	}`, string(body))

	row.IsOpen = 3
	_, err = OutletFromRow(row)
	require.Error(t, err)
	assert.Equal(t, "int_parsing", fieldTypes(t, err)["is_open"])

	row.IsOpen = 0
	row.Name = "X"
	_, err = OutletFromRow(row)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, SourceResponse, verr.Errors[0].Loc[0])
}

func TestOrderFromRowRequiresCompletionTime(t *testing.T) {
	row := &models.Order{
		ID:          1,
		OutletID:    1,
		ProductIDs:  []int64{1},
		TotalPrice:  decimal.RequireFromString("300.00"),
		Currency:    "KES",
		IsCompleted: true,
		Status:      models.OrderStatusCompleted,
		PlacedAt:    time.Now(),
	}

	_, err := OrderFromRow(row)
	require.Error(t, err)
	assert.Equal(t, "missing", fieldTypes(t, err)["completed_at"])

	at := time.Now()
	row.CompletedAt = &at
	order, err := OrderFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "300", order.TotalPrice.String())
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewFieldError(SourceBody, "outlet_id", "does not match", "value_error")
	assert.Equal(t, "1 validation error: body.outlet_id: does not match", err.Error())
}
