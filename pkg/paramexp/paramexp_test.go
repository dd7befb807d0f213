package paramexp_test

import (
	"os"
	"testing"

	"github.com/lwmacct/260821-go-pkg-paramexp/pkg/paramexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_PassThrough(t *testing.T) {
	store := paramexp.MapStore{"FOO": "bar"}

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "plain text", input: "hello world"},
		{name: "sigil not leading", input: "prefix-$FOO"},
		{name: "braced not leading", input: "prefix-${FOO}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paramexp.Expand(tt.input, paramexp.WithStore(store))
			require.NoError(t, err)
			assert.Equal(t, tt.input, got, "input without leading $ must come back unchanged")
		})
	}
}

func TestExpand_Substitution(t *testing.T) {
	tests := []struct {
		name  string
		input string
		store paramexp.MapStore
		want  string
	}{
		{
			name:  "simple var",
			input: "$FOO",
			store: paramexp.MapStore{"FOO": "bar"},
			want:  "bar",
		},
		{
			name:  "simple var with literal tail",
			input: "$FOO/static",
			store: paramexp.MapStore{"FOO": "bar"},
			want:  "bar/static",
		},
		{
			name:  "braced var",
			input: "${FOO}",
			store: paramexp.MapStore{"FOO": "bar"},
			want:  "bar",
		},
		{
			name:  "missing var expands to empty",
			input: "$MISSING",
			store: paramexp.MapStore{},
			want:  "",
		},
		{
			name:  "empty braces expand to nothing",
			input: "${}",
			store: paramexp.MapStore{},
			want:  "",
		},
		{
			name:  "consecutive refs with literal interleaving",
			input: "$FOO-$BAR",
			store: paramexp.MapStore{"FOO": "1", "BAR": "2"},
			want:  "1-2",
		},
		{
			name:  "adjacent refs",
			input: "$FOO$BAR",
			store: paramexp.MapStore{"FOO": "1", "BAR": "2"},
			want:  "12",
		},
		{
			name:  "braced ref glued to name chars",
			input: "${FOO}bar",
			store: paramexp.MapStore{"FOO": "x"},
			want:  "xbar",
		},
		{
			name:  "bare trailing sigil",
			input: "$",
			store: paramexp.MapStore{},
			want:  "$",
		},
		{
			name:  "double sigil keeps one literal dollar",
			input: "$$",
			store: paramexp.MapStore{},
			want:  "$",
		},
		{
			name:  "sigil before non-name char",
			input: "$-rest",
			store: paramexp.MapStore{},
			want:  "-rest",
		},
		{
			name:  "underscore and digits in name",
			input: "${FOO_2}",
			store: paramexp.MapStore{"FOO_2": "ok"},
			want:  "ok",
		},
		{
			name:  "default for missing",
			input: "${MISSING:-fallback}",
			store: paramexp.MapStore{},
			want:  "fallback",
		},
		{
			name:  "default ignored when set",
			input: "${FOO:-fallback}",
			store: paramexp.MapStore{"FOO": "bar"},
			want:  "bar",
		},
		{
			name:  "alternate for set",
			input: "${FOO:+alt}",
			store: paramexp.MapStore{"FOO": "x"},
			want:  "alt",
		},
		{
			name:  "alternate for set-but-empty",
			input: "${FOO:+alt}",
			store: paramexp.MapStore{"FOO": ""},
			want:  "alt",
		},
		{
			name:  "alternate for missing",
			input: "${MISSING:+alt}",
			store: paramexp.MapStore{},
			want:  "",
		},
		{
			name:  "alternate word is not re-expanded",
			input: "${FOO:+$FOO}",
			store: paramexp.MapStore{"FOO": "x"},
			want:  "$FOO",
		},
		{
			name:  "assign then reference in same pass",
			input: "${NEW:=value}-${NEW}",
			store: paramexp.MapStore{},
			want:  "value-value",
		},
		{
			name:  "slice offset and length",
			input: "${NAME:2:3}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "cde",
		},
		{
			name:  "slice offset to end",
			input: "${NAME:2}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "cdef",
		},
		{
			name:  "slice first length chars",
			input: "${NAME::3}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "abc",
		},
		{
			name:  "slice offset beyond end clamps",
			input: "${NAME:99}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "",
		},
		{
			name:  "slice length beyond end clamps",
			input: "${NAME:4:99}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "ef",
		},
		{
			name:  "slice of missing var",
			input: "${MISSING:2:3}",
			store: paramexp.MapStore{},
			want:  "",
		},
		{
			name:  "slice counts runes not bytes",
			input: "${NAME:1:2}",
			store: paramexp.MapStore{"NAME": "héllo"},
			want:  "él",
		},
		{
			name:  "alphabetic offset yields whole value",
			input: "${NAME:abc}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "abcdef",
		},
		{
			name:  "alphabetic length skips substitution",
			input: "${NAME:1:abc}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "",
		},
		{
			name:  "empty length skips substitution",
			input: "${NAME:1:}",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "",
		},
		{
			name:  "surrounding spaces in modifier are trimmed",
			input: "${NAME : 2 : 3 }",
			store: paramexp.MapStore{"NAME": "abcdef"},
			want:  "cde",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paramexp.Expand(tt.input, paramexp.WithStore(tt.store))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		errMsg  string
	}{
		{
			name:    "unterminated brace",
			input:   "${FOO",
			wantErr: paramexp.ErrUnterminatedBrace,
			errMsg:  `FOO: "{" was never closed`,
		},
		{
			name:    "unterminated brace with modifier",
			input:   "${FOO:-bar",
			wantErr: paramexp.ErrUnterminatedBrace,
			errMsg:  `FOO:-bar: "{" was never closed`,
		},
		{
			name:    "empty offset",
			input:   "${FOO:}",
			wantErr: paramexp.ErrBadSubstitution,
			errMsg:  "bad substitution",
		},
		{
			name:    "malformed offset",
			input:   "${FOO:@}",
			wantErr: paramexp.ErrBadSubstitution,
			errMsg:  "bad substitution",
		},
		{
			name:    "length not an integer",
			input:   "${FOO:1:2a}",
			wantErr: paramexp.ErrOperandExpected,
			errMsg:  `operand expected (error token is "2a")`,
		},
		{
			name:    "negative length",
			input:   "${FOO:0:-1}",
			wantErr: paramexp.ErrNegativeLength,
			errMsg:  "-1: substring expression < 0",
		},
		{
			name:    "error aborts whole expansion",
			input:   "$FOO-${FOO:0:-1}",
			wantErr: paramexp.ErrNegativeLength,
			errMsg:  "substring expression < 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := paramexp.MapStore{"FOO": "abcdef"}
			got, err := paramexp.Expand(tt.input, paramexp.WithStore(store))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, got, "no partial result on syntax error")
		})
	}
}

func TestExpand_DefaultDoesNotMutateStore(t *testing.T) {
	store := paramexp.MapStore{}

	got, err := paramexp.Expand("${MISSING:-fallback}", paramexp.WithStore(store))
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
	assert.False(t, store.Contains("MISSING"), ":- must not write to the store")
}

func TestExpand_AssignMutatesStore(t *testing.T) {
	store := paramexp.MapStore{}

	got, err := paramexp.Expand("${MISSING:=fallback}", paramexp.WithStore(store))
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
	require.True(t, store.Contains("MISSING"), ":= must write the default to the store")
	assert.Equal(t, "fallback", store.Get("MISSING", ""))

	// 已存在的变量不被覆盖
	got, err = paramexp.Expand("${MISSING:=other}", paramexp.WithStore(store))
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
	assert.Equal(t, "fallback", store.Get("MISSING", ""))
}

func TestExpand_DefaultStoreIsProcessEnv(t *testing.T) {
	t.Setenv("PARAMEXP_TEST_SET", "from-env")
	t.Setenv("PARAMEXP_TEST_NEW", "placeholder")
	require.NoError(t, os.Unsetenv("PARAMEXP_TEST_NEW"))

	got, err := paramexp.Expand("${PARAMEXP_TEST_SET}")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)

	// ":=" 赋值持久化到进程环境，后续展开可见
	got, err = paramexp.Expand("${PARAMEXP_TEST_NEW:=assigned}")
	require.NoError(t, err)
	assert.Equal(t, "assigned", got)
	assert.Equal(t, "assigned", os.Getenv("PARAMEXP_TEST_NEW"))

	got, err = paramexp.Expand("${PARAMEXP_TEST_NEW}")
	require.NoError(t, err)
	assert.Equal(t, "assigned", got)
}

func TestEnvironSnapshot_IsolatesAssignments(t *testing.T) {
	t.Setenv("PARAMEXP_SNAP_UNSET", "placeholder")
	require.NoError(t, os.Unsetenv("PARAMEXP_SNAP_UNSET"))

	store := paramexp.EnvironSnapshot()

	got, err := paramexp.Expand("${PARAMEXP_SNAP_UNSET:=local}", paramexp.WithStore(store))
	require.NoError(t, err)
	assert.Equal(t, "local", got)
	assert.Equal(t, "local", store.Get("PARAMEXP_SNAP_UNSET", ""))
	assert.Empty(t, os.Getenv("PARAMEXP_SNAP_UNSET"), "snapshot assignment must not touch the real environment")
}

func BenchmarkExpand(b *testing.B) {
	store := paramexp.MapStore{"FOO": "foo-value", "BAR": "bar-value", "NAME": "abcdefghij"}
	input := "$FOO/${BAR:-fallback}/${NAME:2:5}/literal tail with no references"

	b.ReportAllocs()
	for b.Loop() {
		if _, err := paramexp.Expand(input, paramexp.WithStore(store)); err != nil {
			b.Fatal(err)
		}
	}
}
