package controllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateVisitItemsRejectsEmptySelection(t *testing.T) {
	err := ValidateVisitItems(nil)
	assert.ErrorIs(t, err, ErrNoServices)

	err = ValidateVisitItems([]VisitItemInput{})
	assert.ErrorIs(t, err, ErrNoServices)
}

func TestValidateVisitItemsRejectsMissingEmployee(t *testing.T) {
	items := []VisitItemInput{
		{ServiceID: uuid.New(), EmployeeID: uuid.New()},
		{ServiceID: uuid.New()}, // no employee assigned
	}

	err := ValidateVisitItems(items)
	assert.ErrorIs(t, err, ErrMissingEmployee)
}

func TestValidateVisitItemsAcceptsAssignedItems(t *testing.T) {
	items := []VisitItemInput{
		{ServiceID: uuid.New(), EmployeeID: uuid.New()},
		{ServiceID: uuid.New(), EmployeeID: uuid.New()},
	}

	assert.NoError(t, ValidateVisitItems(items))
}
