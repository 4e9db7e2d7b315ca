package ort_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	ort "github.com/BackGwa/go-ort"
)

// mustGet fetches a key and fails the test on error.
func mustGet(t *testing.T, v *ort.Value, key string) *ort.Value {
	t.Helper()
	got, err := v.Get(key)
	require.NoError(t, err)
	return got
}

func mustIndex(t *testing.T, v *ort.Value, i int) *ort.Value {
	t.Helper()
	got, err := v.Index(i)
	require.NoError(t, err)
	return got
}

func requireString(t *testing.T, v *ort.Value, want string) {
	t.Helper()
	s, ok := v.AsString()
	require.True(t, ok, "expected string, got %s", v.Type())
	require.Equal(t, want, s)
}

func requireNumber(t *testing.T, v *ort.Value, want float64) {
	t.Helper()
	n, ok := v.AsNumber()
	require.True(t, ok, "expected number, got %s", v.Type())
	require.Equal(t, want, n)
}

func TestParse_AnonymousSingleRecordUnwrapped(t *testing.T) {
	v, err := ort.Parse([]byte(":name,age:\nAlice,30"))
	require.NoError(t, err)

	// Exactly one data line: the record comes back unwrapped, not as a
	// one-element array.
	require.True(t, v.IsObject())
	requireString(t, mustGet(t, v, "name"), "Alice")
	requireNumber(t, mustGet(t, v, "age"), 30)
}

func TestParse_AnonymousMultipleRecords(t *testing.T) {
	v, err := ort.Parse([]byte(":name,age:\nAlice,30\nBob,25"))
	require.NoError(t, err)

	require.True(t, v.IsArray())
	n, err := v.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	requireString(t, mustGet(t, mustIndex(t, v, 0), "name"), "Alice")
	requireNumber(t, mustGet(t, mustIndex(t, v, 1), "age"), 25)
}

func TestParse_NestedFieldTuples(t *testing.T) {
	v, err := ort.Parse([]byte("people:name,addr(street,city):\nAlice,(Main St,NYC)"))
	require.NoError(t, err)

	people := mustGet(t, v, "people")
	require.True(t, people.IsArray())
	rec := mustIndex(t, people, 0)
	requireString(t, mustGet(t, rec, "name"), "Alice")

	addr := mustGet(t, rec, "addr")
	require.True(t, addr.IsObject())
	requireString(t, mustGet(t, addr, "street"), "Main St")
	requireString(t, mustGet(t, addr, "city"), "NYC")
}

func TestParse_DeeplyNestedFieldGroups(t *testing.T) {
	src := "items:id,meta(owner(first,last),tag):\n1,((Ada,Lovelace),math)"
	v, err := ort.Parse([]byte(src))
	require.NoError(t, err)

	rec := mustIndex(t, mustGet(t, v, "items"), 0)
	owner := mustGet(t, mustGet(t, rec, "meta"), "owner")
	requireString(t, mustGet(t, owner, "first"), "Ada")
	requireString(t, mustGet(t, owner, "last"), "Lovelace")
	requireString(t, mustGet(t, mustGet(t, rec, "meta"), "tag"), "math")
}

func TestParse_SingleValueSection(t *testing.T) {
	t.Run("array literal", func(t *testing.T) {
		v, err := ort.Parse([]byte("tags:\n[a,b,c]"))
		require.NoError(t, err)

		tags := mustGet(t, v, "tags")
		require.True(t, tags.IsArray())
		requireString(t, mustIndex(t, tags, 0), "a")
		requireString(t, mustIndex(t, tags, 2), "c")
	})

	t.Run("inline object literal", func(t *testing.T) {
		v, err := ort.Parse([]byte("cfg:\n(theme:dark,volume:7)"))
		require.NoError(t, err)

		cfg := mustGet(t, v, "cfg")
		requireString(t, mustGet(t, cfg, "theme"), "dark")
		requireNumber(t, mustGet(t, cfg, "volume"), 7)
	})

	t.Run("scalar", func(t *testing.T) {
		v, err := ort.Parse([]byte("version:\n1.5"))
		require.NoError(t, err)
		requireNumber(t, mustGet(t, v, "version"), 1.5)
	})

	// Documented quirk: only the first data line of a bare "key:"
	// section is consulted; anything after it is silently ignored.
	t.Run("extra data lines are ignored", func(t *testing.T) {
		v, err := ort.Parse([]byte("tags:\n[a,b]\nthis line is never read"))
		require.NoError(t, err)

		tags := mustGet(t, v, "tags")
		n, err := tags.Len()
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})

	t.Run("no data lines yields an empty array", func(t *testing.T) {
		v, err := ort.Parse([]byte("empty:"))
		require.NoError(t, err)
		val := mustGet(t, v, "empty")
		require.True(t, val.IsArray())
		n, _ := val.Len()
		require.Zero(t, n)
	})
}

func TestParse_AnonymousSectionTerminatesDocument(t *testing.T) {
	// The first top-level anonymous header produces the document's
	// whole result; later sections are never consulted.
	v, err := ort.Parse([]byte(":a:\n1\nignored:x:\n2"))
	require.NoError(t, err)

	require.True(t, v.IsObject())
	requireNumber(t, mustGet(t, v, "a"), 1)
	_, err = v.Get("ignored")
	require.ErrorIs(t, err, ort.ErrKeyNotFound)
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	src := "# people registry\n\npeople:name,age:\n# header comment inside section\nAlice,30\n\nBob,25\n"
	v, err := ort.Parse([]byte(src))
	require.NoError(t, err)

	people := mustGet(t, v, "people")
	n, err := people.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	requireString(t, mustGet(t, mustIndex(t, people, 1), "name"), "Bob")
}

func TestParse_MultipleSections(t *testing.T) {
	src := "name:\nSample\n\nservers:host,port:\nalpha,8080\nbeta,9090\n\nflags:\n[on,off]"
	v, err := ort.Parse([]byte(src))
	require.NoError(t, err)

	require.Equal(t, []string{"name", "servers", "flags"}, v.Keys())
	requireString(t, mustGet(t, v, "name"), "Sample")
	servers := mustGet(t, v, "servers")
	requireNumber(t, mustGet(t, mustIndex(t, servers, 1), "port"), 9090)
}

func TestParse_ScalarTypeInference(t *testing.T) {
	cases := []struct {
		name  string
		cell  string
		check func(t *testing.T, v *ort.Value)
	}{
		{"empty is null", "", func(t *testing.T, v *ort.Value) { require.True(t, v.IsNull()) }},
		{"integer", "42", func(t *testing.T, v *ort.Value) { requireNumber(t, v, 42) }},
		{"negative float", "-2.5", func(t *testing.T, v *ort.Value) { requireNumber(t, v, -2.5) }},
		{"exponent", "1e3", func(t *testing.T, v *ort.Value) { requireNumber(t, v, 1000) }},
		{"true", "true", func(t *testing.T, v *ort.Value) {
			b, ok := v.AsBool()
			require.True(t, ok)
			require.True(t, b)
		}},
		{"false", "false", func(t *testing.T, v *ort.Value) {
			b, ok := v.AsBool()
			require.True(t, ok)
			require.False(t, b)
		}},
		{"partial number stays a string", "12abc", func(t *testing.T, v *ort.Value) { requireString(t, v, "12abc") }},
		{"hex float stays a string", "0x1p3", func(t *testing.T, v *ort.Value) { requireString(t, v, "0x1p3") }},
		{"separated digits stay a string", "1_000", func(t *testing.T, v *ort.Value) { requireString(t, v, "1_000") }},
		{"boolean-ish text stays a string", "True", func(t *testing.T, v *ort.Value) { requireString(t, v, "True") }},
		{"empty array", "[]", func(t *testing.T, v *ort.Value) {
			require.True(t, v.IsArray())
			n, _ := v.Len()
			require.Zero(t, n)
		}},
		{"empty object", "()", func(t *testing.T, v *ort.Value) {
			require.True(t, v.IsObject())
			n, _ := v.Len()
			require.Zero(t, n)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ort.Parse([]byte("v:\n" + tc.cell))
			require.NoError(t, err)
			if tc.cell == "" {
				// An absent data line yields an empty array instead;
				// probe the null case through a tabular cell.
				v, err = ort.Parse([]byte("row:a,b:\n,2"))
				require.NoError(t, err)
				tc.check(t, mustGet(t, mustIndex(t, mustGet(t, v, "row"), 0), "a"))
				return
			}
			tc.check(t, mustGet(t, v, "v"))
		})
	}
}

func TestParse_DepthAwareSplitting(t *testing.T) {
	t.Run("comma inside parens does not split", func(t *testing.T) {
		v, err := ort.Parse([]byte("rows:a,b:\n(x:1,y:2),3"))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		requireNumber(t, mustGet(t, mustGet(t, rec, "a"), "y"), 2)
		requireNumber(t, mustGet(t, rec, "b"), 3)
	})

	t.Run("comma inside brackets does not split", func(t *testing.T) {
		v, err := ort.Parse([]byte("rows:a,b:\n[1,2,3],4"))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		a := mustGet(t, rec, "a")
		n, _ := a.Len()
		require.Equal(t, 3, n)
		requireNumber(t, mustGet(t, rec, "b"), 4)
	})

	t.Run("escaped comma does not split", func(t *testing.T) {
		v, err := ort.Parse([]byte(`rows:a,b:` + "\n" + `x\,y,z`))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		requireString(t, mustGet(t, rec, "a"), "x,y")
		requireString(t, mustGet(t, rec, "b"), "z")
	})

	t.Run("escaped brackets do not affect depth", func(t *testing.T) {
		v, err := ort.Parse([]byte(`rows:a,b:` + "\n" + `\[x,y`))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		requireString(t, mustGet(t, rec, "a"), "[x")
		requireString(t, mustGet(t, rec, "b"), "y")
	})
}

func TestParse_EscapeSequences(t *testing.T) {
	v, err := ort.Parse([]byte("s:\n" + `a\,b\nc\td\re\\f`))
	require.NoError(t, err)
	requireString(t, mustGet(t, v, "s"), "a,b\nc\td\re\\f")
}

func TestParse_ArityMismatch(t *testing.T) {
	t.Run("top-level row", func(t *testing.T) {
		_, err := ort.Parse([]byte(":a,b:\n1,2,3"))
		require.Error(t, err)

		var pe *ort.ParseError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, 2, pe.Line)
		require.Equal(t, "1,2,3", pe.Src)
		require.Contains(t, pe.Message, "expected 2 values, got 3")
	})

	t.Run("nested tuple", func(t *testing.T) {
		_, err := ort.Parse([]byte("people:name,addr(street,city):\nAlice,(Main St)"))
		require.Error(t, err)

		var pe *ort.ParseError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, 2, pe.Line)
		require.Contains(t, pe.Message, "expected 2 nested values, got 1")
	})

	t.Run("no partial document on failure", func(t *testing.T) {
		v, err := ort.Parse([]byte("ok:a:\n1\n\nbad:x,y:\n1"))
		require.Error(t, err)
		require.Nil(t, v)
	})
}

func TestParse_EscapedSectionKey(t *testing.T) {
	t.Run("single-value section", func(t *testing.T) {
		v, err := ort.Parse([]byte(`odd\,key:` + "\n1"))
		require.NoError(t, err)
		requireNumber(t, mustGet(t, v, "odd,key"), 1)
	})

	t.Run("tabular section", func(t *testing.T) {
		v, err := ort.Parse([]byte(`a\(b:x:` + "\n1"))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "a(b"), 0)
		requireNumber(t, mustGet(t, rec, "x"), 1)
	})
}

func TestParse_UnmatchedClosingParen(t *testing.T) {
	_, err := ort.Parse([]byte("rows:a)b:\n1"))
	require.Error(t, err)

	var pe *ort.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 1, pe.Line)
	require.Contains(t, pe.Message, "unmatched closing parenthesis")
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# only a comment\n", "no header here\n"} {
		v, err := ort.Parse([]byte(src))
		require.NoError(t, err)
		require.True(t, v.IsObject())
		n, _ := v.Len()
		require.Zero(t, n, "source %q", src)
	}
}

func TestParse_CRLFInput(t *testing.T) {
	v, err := ort.Parse([]byte(":name,age:\r\nAlice,30\r\n"))
	require.NoError(t, err)
	requireString(t, mustGet(t, v, "name"), "Alice")
}

func TestParse_MaxDepthOption(t *testing.T) {
	deep := "v:\n[[[[[[[[[[1]]]]]]]]]]"

	_, err := ort.Parse([]byte(deep))
	require.NoError(t, err)

	_, err = ort.Parse([]byte(deep), ort.MaxDepth(3))
	require.Error(t, err)
	require.Contains(t, err.Error(), "max recursion depth")

	_, err = ort.Parse(nil, ort.MaxDepth(0))
	require.Error(t, err)
	require.Contains(t, err.Error(), "positive integer")
}

func TestParse_NestedFieldCellFallbacks(t *testing.T) {
	t.Run("empty cell is null", func(t *testing.T) {
		v, err := ort.Parse([]byte("rows:a(x,y),b:\n,1"))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		require.True(t, mustGet(t, rec, "a").IsNull())
	})

	t.Run("empty tuple is an empty object", func(t *testing.T) {
		v, err := ort.Parse([]byte("rows:a(x,y),b:\n(),1"))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		a := mustGet(t, rec, "a")
		require.True(t, a.IsObject())
		n, _ := a.Len()
		require.Zero(t, n)
	})

	t.Run("array cell under a nested field", func(t *testing.T) {
		v, err := ort.Parse([]byte("rows:a(x,y),b:\n[1,2],3"))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		require.True(t, mustGet(t, rec, "a").IsArray())
	})

	t.Run("plain scalar cell under a nested field", func(t *testing.T) {
		v, err := ort.Parse([]byte("rows:a(x,y),b:\nhello,3"))
		require.NoError(t, err)
		rec := mustIndex(t, mustGet(t, v, "rows"), 0)
		requireString(t, mustGet(t, rec, "a"), "hello")
	})
}

func TestDecoder(t *testing.T) {
	t.Run("reads a document from a reader", func(t *testing.T) {
		d := ort.NewDecoder(newReader(":name,age:\nAlice,30"))
		v, err := d.Decode()
		require.NoError(t, err)
		requireString(t, mustGet(t, v, "name"), "Alice")
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := ort.NewDecoder(nil).Decode()
		require.Error(t, err)
	})
}
