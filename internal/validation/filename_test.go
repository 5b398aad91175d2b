package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.txt", "notes.txt"},
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{"../../etc/passwd", "etc_passwd"},
		{`..\..\windows\system32`, "windows_system32"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"/absolute/path.pdf", "absolute_path.pdf"},
		{".hidden", "hidden"},
		{"__init__.py", "init__.py"},
		{"report (final).pdf", "report_final.pdf"},
		{"tab\tand\nnewline.txt", "tab_and_newline.txt"},
		{"..", ""},
		{"", ""},
		{"日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFilename(tt.in))
		})
	}
}

func TestSafeFilename_NeverContainsSeparatorsOrTraversal(t *testing.T) {
	inputs := []string{
		"../x", "..%2f..%2fx", "a/../../b", `a\..\b`, "....//....//x", "./.", "~/.ssh/id_rsa",
	}

	for _, in := range inputs {
		got := SafeFilename(in)
		assert.NotContains(t, got, "/", "input %q", in)
		assert.NotContains(t, got, `\`, "input %q", in)
		assert.NotEqual(t, "..", got, "input %q", in)
		assert.False(t, len(got) > 0 && got[0] == '.', "input %q produced hidden name %q", in, got)
	}
}

func TestIsSafeFilename(t *testing.T) {
	assert.True(t, IsSafeFilename("notes.txt"))
	assert.True(t, IsSafeFilename("My_cool_movie.mov"))

	assert.False(t, IsSafeFilename(""))
	assert.False(t, IsSafeFilename(".."))
	assert.False(t, IsSafeFilename("../../etc/passwd"))
	assert.False(t, IsSafeFilename("a/b"))
	assert.False(t, IsSafeFilename("with space.txt"))
	assert.False(t, IsSafeFilename(".staging"))
}
