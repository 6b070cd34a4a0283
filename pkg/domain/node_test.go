package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"espprc/pkg/apperror"
)

func TestNodeValidate(t *testing.T) {
	valid := Node{ID: 1, Demand: 10, Earliest: 0, Latest: 100, ServiceTime: 5}
	assert.Nil(t, valid.Validate())

	negDemand := Node{ID: 2, Demand: -1, Latest: 100}
	err := negDemand.Validate()
	assert.NotNil(t, err)
	assert.Equal(t, apperror.CodeInvalidNode, err.Code)

	negService := Node{ID: 3, ServiceTime: -1, Latest: 100}
	err = negService.Validate()
	assert.NotNil(t, err)
	assert.Equal(t, apperror.CodeInvalidNode, err.Code)

	badWindow := Node{ID: 4, Earliest: 50, Latest: 10}
	err = badWindow.Validate()
	assert.NotNil(t, err)
	assert.Equal(t, apperror.CodeInvalidTimeWindow, err.Code)
}
