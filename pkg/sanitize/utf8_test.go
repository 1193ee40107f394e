package sanitize

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "empty", in: []byte{}, want: ""},
		{name: "ascii", in: []byte("hello world"), want: "hello world"},
		{name: "multibyte kept", in: []byte("caf\xc3\xa9 \xe2\x82\xac \xf0\x9f\x98\x80"), want: "café € 😀"},
		{name: "invalid lead dropped", in: []byte("a\xffb"), want: "ab"},
		{name: "stray continuation dropped", in: []byte("a\x80\x80b"), want: "ab"},
		{name: "truncated at end", in: []byte("abc\xe2\x82"), want: "abc"},
		{name: "bad continuation keeps following ascii", in: []byte("\xe2Xyz"), want: "Xyz"},
		{name: "lead dropped then rescan", in: []byte("\xc3\xc3\xa9"), want: "é"},
		{name: "overlong dropped", in: []byte("a\xc0\x80b"), want: "ab"},
		{name: "surrogate dropped", in: []byte("a\xed\xa0\x80b"), want: "ab"},
		{name: "nul kept", in: []byte("a\x00b"), want: "a\x00b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UTF8(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestUTF8_Idempotent(t *testing.T) {
	inputs := [][]byte{
		[]byte("plain"),
		[]byte("\xff\xfe\xfd"),
		[]byte("mix \xe2\x82\xac \xe2\x82 \xf0\x9f\x98"),
		{0xf4, 0x90, 0x80, 0x80, 'x'},
		{0xc2},
	}
	for _, in := range inputs {
		once := UTF8(in)
		assert.Equal(t, once, String(once), "input %q", in)
		assert.True(t, utf8.ValidString(once))
	}
}

func TestUTF8_ValidInputUnchanged(t *testing.T) {
	for _, s := range []string{"", "ascii", "Привет, мир", "日本語テキスト", "emoji 🚀 here", " nbsp"} {
		assert.Equal(t, s, String(s))
	}
}
