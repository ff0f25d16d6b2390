package timetable

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		want    Day
		wantErr bool
	}{
		{"1", Monday, false},
		{"7", Sunday, false},
		{"monday", Monday, false},
		{"Wednesday", Wednesday, false},
		{"thu", Thursday, false},
		{" sat ", Saturday, false},
		{"0", 0, true},
		{"8", 0, true},
		{"someday", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDay))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, ColorBlue, c)

	c, err = ParseColor("Teal")
	require.NoError(t, err)
	assert.Equal(t, ColorTeal, c)

	_, err = ParseColor("magenta")
	assert.ErrorIs(t, err, ErrInvalidColor)

	assert.Len(t, AllColors(), 8)
	for _, c := range AllColors() {
		assert.True(t, c.Valid(), "color %s should be valid", c)
	}
}

func TestSubject_Slot(t *testing.T) {
	tests := []struct {
		name    string
		subject Subject
		want    SlotKind
	}{
		{"nothing set", Subject{}, SlotNone},
		{"period only", Subject{Period: IntPtr(2)}, SlotPeriod},
		{"custom only", Subject{CustomTime: StringPtr("7:00-8:30")}, SlotCustom},
		{"custom wins over period", Subject{Period: IntPtr(2), CustomTime: StringPtr("7:00-8:30")}, SlotCustom},
		{"empty custom falls back to period", Subject{Period: IntPtr(2), CustomTime: StringPtr("")}, SlotPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.subject.Slot())
		})
	}
}

func TestSubject_Clone(t *testing.T) {
	s := Subject{ID: "a", Period: IntPtr(3), CustomTime: StringPtr("x")}
	c := s.Clone()
	*c.Period = 9
	*c.CustomTime = "y"

	assert.Equal(t, 3, *s.Period)
	assert.Equal(t, "x", *s.CustomTime)
}

func TestSubject_JSONShape(t *testing.T) {
	s := Subject{ID: "a", Name: "Math", DayOfWeek: Tuesday, Color: ColorRed}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","name":"Math","dayOfWeek":2,"color":"red"}`, string(data))

	var decoded Subject
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","name":"Art","dayOfWeek":5,"period":4,"color":"pink"}`), &decoded))
	require.NotNil(t, decoded.Period)
	assert.Equal(t, 4, *decoded.Period)
	assert.Nil(t, decoded.CustomTime)
}

func TestDefaultPeriods(t *testing.T) {
	periods := DefaultPeriods()
	require.Len(t, periods, 5)
	assert.Equal(t, "7:00", periods[0].StartTime)
	assert.Equal(t, "11:05", periods[4].EndTime)
	assert.NotEqual(t, periods[0].ID, periods[1].ID)
	for i, p := range periods {
		assert.Equal(t, i+1, p.Number)
	}
}

func TestSortPeriods_Stable(t *testing.T) {
	periods := []Period{
		{ID: "c", Number: 3},
		{ID: "a1", Number: 1},
		{ID: "b", Number: 2},
		{ID: "a2", Number: 1},
	}
	SortPeriods(periods)

	ids := make([]string, len(periods))
	for i, p := range periods {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids)
}

func TestDay_String(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sun", Sunday.Short())
	assert.Equal(t, "Day(9)", Day(9).String())
	assert.Equal(t, "Day(0)", Day(0).Short())

	for _, d := range AllDays() {
		parsed, err := ParseDay(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}
