// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Header
	}{
		{
			name: "suffix retained with name",
			line: "5. John SMITH Jr., born 1850, died 1900",
			want: Header{EntryNumber: "5", Name: "John SMITH Jr.", Clause: "born 1850, died 1900"},
		},
		{
			name: "clean name is unchanged",
			line: "John SMITH",
			want: Header{Name: "John SMITH"},
		},
		{
			name: "comma without entry number",
			line: "John SMITH, born 1850",
			want: Header{Name: "John SMITH", Clause: "born 1850"},
		},
		{
			name: "biographical marker without comma",
			line: "12. Mary JONES born 1850 in Ohio",
			want: Header{EntryNumber: "12", Name: "Mary JONES", Clause: "born 1850 in Ohio"},
		},
		{
			name: "marker text placed before comma text",
			line: "4. Ann LEE died 1900, buried in Ohio",
			want: Header{EntryNumber: "4", Name: "Ann LEE", Clause: "died 1900, buried in Ohio"},
		},
		{
			name: "was born marker",
			line: "3. Peter BROWN was born 1820, died 1890",
			want: Header{EntryNumber: "3", Name: "Peter BROWN", Clause: "was born 1820, died 1890"},
		},
		{
			name: "son of",
			line: "7. William JONES son of Thomas JONES, born 1801",
			want: Header{EntryNumber: "7", Name: "William JONES", Clause: "son of Thomas JONES, born 1801"},
		},
		{
			name: "daughter of",
			line: "8. Anna SMITH daughter of John SMITH",
			want: Header{EntryNumber: "8", Name: "Anna SMITH", Clause: "daughter of John SMITH"},
		},
		{
			name: "text after suffix moves to clause",
			line: "9. Robert LEE Sr. of Virginia",
			want: Header{EntryNumber: "9", Name: "Robert LEE Sr.", Clause: "of Virginia"},
		},
		{
			name: "roman numeral suffix",
			line: "2. Henry FORD II, born 1917",
			want: Header{EntryNumber: "2", Name: "Henry FORD II", Clause: "born 1917"},
		},
		{
			name: "conjunction split when son of appears",
			line: "Mary and Peter Johnson of Boston",
			want: Header{Name: "Mary", Clause: "and Peter Johnson of Boston"},
		},
		{
			name: "conjunction kept without parentage",
			line: "10. Mary and Ann SMITH",
			want: Header{EntryNumber: "10", Name: "Mary and Ann SMITH"},
		},
		{
			name: "entry number without period",
			line: "15 Thomas GREEN, farmer",
			want: Header{EntryNumber: "15", Name: "Thomas GREEN", Clause: "farmer"},
		},
		{
			name: "empty line",
			line: "",
			want: Header{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.line))
		})
	}
}

func TestSplit_Idempotent(t *testing.T) {
	first := Split("Margaret O'BRIEN")
	second := Split(first.Name)
	assert.Equal(t, first, second)
	assert.Empty(t, second.Clause)
}
