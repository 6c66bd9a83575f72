package orders

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mos234/vegetable-orders/internal/i18n"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-05"`), &d))
	assert.Equal(t, "2025-03-05", d.String())
	assert.Equal(t, "05/03/2025", d.Display())
	assert.Equal(t, time.March, d.Month())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-05"`, string(raw))

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
	assert.Equal(t, "-", d.Display())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDateKeepsUnparseableInput(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"soon"`), &d))
	assert.False(t, d.Valid())
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"soon"`, string(raw))
}

func TestParseDateRFC3339UsesLocalCalendarDay(t *testing.T) {
	ts := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	d, err := ParseDate(ts.Format(time.RFC3339))
	require.NoError(t, err)
	local := ts.Local()
	assert.Equal(t, local.Day(), d.Day())
	assert.Equal(t, local.Month(), d.Month())
}

func TestNewItemComputesTotal(t *testing.T) {
	item := NewItem("Cucumbers", 1.5, "kg", 4.2, i18n.New("en"))
	assert.Equal(t, 6.3, item.Total)
	assert.Equal(t, "kg", item.Unit)
	assert.Equal(t, "kg", item.UnitValue)

	item = NewItem("Parsley", 3, "bunch", 2, i18n.New("he"))
	assert.Equal(t, i18n.New("he").T("Bunch"), item.Unit)

	item = NewItem("Melon", 1, "crate", 0, i18n.New("en"))
	assert.Equal(t, "crate", item.Unit)
	assert.Zero(t, item.Total)
}

func TestDraftHelpers(t *testing.T) {
	d := Draft{
		SupplierID: "sup-1",
		Items: []Item{
			{Name: "Tomatoes", Quantity: 2, UnitValue: "kg", Price: 10},
			{Name: "Onions", Quantity: 0, UnitValue: "kg", Price: 5, Total: 0},
			{Name: "Lettuce", Quantity: 3, UnitValue: "unit", Price: 4.5, Total: 13.5},
		},
	}
	assert.Len(t, d.PositiveItems(), 2)
	assert.Equal(t, 13.5, d.ComputeTotal())

	completed := d.Complete(i18n.New("en"))
	require.Len(t, completed.Items, 2)
	assert.Equal(t, 20.0, completed.Items[0].Total)
	assert.Equal(t, "kg", completed.Items[0].Unit)
	assert.Equal(t, "Unit", completed.Items[1].Unit)
	assert.Equal(t, 33.5, completed.Total)

	d.Total = 99
	assert.Equal(t, 99.0, d.Complete(i18n.New("en")).Total)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Sent", StatusSent.Label())
	assert.Equal(t, "Draft", Status("weird").Label())
	assert.False(t, Status("weird").Valid())
}
