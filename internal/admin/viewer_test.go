package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muurk/geoadmin/internal/model"
)

func TestViewer(t *testing.T) {
	var v Viewer[model.Country]

	_, ok := v.Current()
	assert.False(t, ok)
	assert.False(t, v.Open())

	v.Show(model.Country{ID: 1, Name: "France"})
	v.Show(model.Country{ID: 2, Name: "Peru"})

	got, ok := v.Current()
	assert.True(t, ok)
	assert.Equal(t, "Peru", got.Name, "showing replaces the viewed record")

	v.Close()
	assert.False(t, v.Open())
}
