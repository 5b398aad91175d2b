package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassResolvesConflicts(t *testing.T) {
	assert.Equal(t, "py-2 px-4", Class("px-2 py-2", "px-4"))
}

func TestAlertClass(t *testing.T) {
	success := AlertClass("success")
	assert.Contains(t, success, "bg-emerald-50")
	assert.NotContains(t, success, "bg-sky-50")

	assert.Contains(t, AlertClass("error"), "text-red-800")
	assert.Contains(t, AlertClass("info"), "bg-sky-50")
}

func TestButtonClass(t *testing.T) {
	danger := ButtonClass("danger", "w-full")
	assert.Contains(t, danger, "bg-red-600")
	assert.NotContains(t, danger, "bg-slate-900")
	assert.Contains(t, danger, "w-full")
}
