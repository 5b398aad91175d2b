package ui

import (
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Class merges Tailwind class lists; later classes win over conflicting earlier ones
func Class(classes ...string) string {
	return twmerge.Merge(strings.Join(classes, " "))
}

// AlertClass styles a flash message by kind
func AlertClass(kind string) string {
	base := "rounded-md border px-4 py-3 text-sm border-sky-200 bg-sky-50 text-sky-800"
	switch kind {
	case "success":
		return Class(base, "border-emerald-200 bg-emerald-50 text-emerald-800")
	case "error":
		return Class(base, "border-red-200 bg-red-50 text-red-800")
	default:
		return Class(base)
	}
}

// ButtonClass returns the classes for a button variant ("primary", "danger", "ghost")
func ButtonClass(variant string, extra ...string) string {
	base := "inline-flex items-center justify-center rounded-md px-3 py-2 text-sm font-medium bg-slate-900 text-white hover:bg-slate-700"
	switch variant {
	case "danger":
		base = Class(base, "bg-red-600 hover:bg-red-500")
	case "ghost":
		base = Class(base, "bg-transparent text-slate-700 hover:bg-slate-100")
	}
	return Class(append([]string{base}, extra...)...)
}
