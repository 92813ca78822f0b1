package escape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/code2json/model"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		blob model.CodeBlob
		opts Options
		want model.EscapedString
	}{
		{name: "empty", blob: "", want: `""`},
		{name: "quote and newline", blob: "a\"b\nc", want: `"a\"b\nc"`},
		{name: "backslash", blob: `C:\tmp`, want: `"C:\\tmp"`},
		{name: "tab and carriage return", blob: "x\ty\r\n", want: `"x\ty\r\n"`},
		{name: "other control", blob: "\x01", want: `"\u0001"`},
		{name: "html untouched", blob: "<a>&</a>", want: `"<a>&</a>"`},
		{name: "unicode passes through", blob: "héllo 世界", want: `"héllo 世界"`},
		{name: "ascii mode bmp", blob: "é", opts: Options{ASCII: true}, want: `"\u00e9"`},
		{name: "ascii mode astral", blob: "😀", opts: Options{ASCII: true}, want: `"\ud83d\ude00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.blob, tt.opts))
		})
	}
}

func TestEncodeIsSingleLine(t *testing.T) {
	got := Encode("line one\nline two\n", Options{})
	assert.NotContains(t, string(got), "\n")
}

func TestRoundTrip(t *testing.T) {
	blobs := []model.CodeBlob{
		"",
		`"quoted"`,
		`back\slash\\`,
		"multi\nline\n\tindented\r\n",
		"class Solution:\n    def f(self, S: str) -> int:\n        return len(S)\n",
		"naïve café ☕ 😀",
		"\u2028\u2029",
		"\x00\x1f",
	}

	for _, blob := range blobs {
		for _, opts := range []Options{{}, {ASCII: true}} {
			escaped := Encode(blob, opts)

			var viaStdlib string
			require.NoError(t, json.Unmarshal([]byte(escaped), &viaStdlib))
			assert.Equal(t, string(blob), viaStdlib)

			decoded, err := Decode(escaped)
			require.NoError(t, err)
			assert.Equal(t, blob, decoded)
			assert.NoError(t, Verify(blob, escaped))
		}
	}
}

func TestDecodeRejectsNonStrings(t *testing.T) {
	for _, in := range []model.EscapedString{``, `abc`, `42`, `{"a":1}`, `"unterminated`, `"a" "b"`} {
		_, err := Decode(in)
		assert.ErrorIs(t, err, ErrNotString, "input %q", in)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	err := Verify("abc", `"abd"`)
	assert.ErrorIs(t, err, ErrRoundTrip)
}

func TestVerifyInvalidUTF8(t *testing.T) {
	blob := model.CodeBlob("a\xffb")
	err := Verify(blob, Encode(blob, Options{}))
	assert.ErrorIs(t, err, ErrRoundTrip)
}
