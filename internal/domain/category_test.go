package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryField(t *testing.T) {
	f, err := ParseCategoryField("country")
	require.NoError(t, err)
	assert.Equal(t, Country, f)

	_, err = ParseCategoryField("office")
	assert.Error(t, err)
}

func TestChartTitles(t *testing.T) {
	assert.Equal(t, "Average Salary by Job Title", MeanCompensation.Title(JobTitle))
	assert.Equal(t, "Number of Employees by Country", DistinctEmployeeCount.Title(Country))
	assert.Equal(t, "Countries", Country.Plural())
}

func TestRecordCategory(t *testing.T) {
	title := "Engineer"
	r := EmployeeRecord{EmployeeID: "1", JobTitle: &title}

	v, ok := r.Category(JobTitle)
	assert.True(t, ok)
	assert.Equal(t, "Engineer", v)

	_, ok = r.Category(Country)
	assert.False(t, ok)

	_, ok = r.Category(CategoryField("office"))
	assert.False(t, ok)
}
