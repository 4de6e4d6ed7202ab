package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hououlogs/internal/model"
	"hououlogs/internal/utils/gz"
)

const mockLog = `
00:00 | 07 | 四鳳南喰赤 | <a href="http://tenhou.net/0/?log=2009020100gm-00a9-0000-00000000">牌譜</a> | EXAMPLE2(+47) EXAMPLE(+1) EXAMPLE4(-19) EXAMPLE3(-29)<br>

23:02 | 35 | 四鳳南喰赤 | <a href="http://tenhou.net/0/?log=2009020123gm-00a9-0000-00000001">牌譜</a> | EXAMPLE(+38) EXAMPLE2(+4) EXAMPLE4(-16) EXAMPLE3(-26)<br>

`

const mockYakuman = `total=580570;
updated="2025/02/01 00:12";
ykm=['01/31 23:57','etra','[1,[12,14,15,116,118],[50794,47721,49674],12]',[39],'2025013123gm-0001-0000-12b924e3&tw=2&ts=4','01/31 23:40','åŽŸçˆ†','[137,[24,25,26,28,30,31,60,61,63,73,74,75,109,110],[],109]',[41],'2025013123gm-0089-0000-a148333d&tw=1&ts=9'];
sw();
`

func TestExtractIDs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Pair
	}{
		{name: "empty text", text: "", want: []Pair{}},
		{
			name: "no match",
			text: "L1000 | 21:37 | 四般南－－ | NoName(+48) NoName(+13) NoName(-25) NoName(-36)",
			want: []Pair{},
		},
		{
			name: "bom and crlf line endings",
			text: "\uFEFF" + "00:00 | 07 | 四鳳南喰赤 | <a href=\"http://tenhou.net/0/?log=2009020100gm-00a9-0000-00000000\">牌譜</a><br>\r\n" +
				"23:02 | 35 | 四鳳南喰赤 | <a href=\"http://tenhou.net/0/?log=2009020123gm-00a9-0000-00000001\">牌譜</a><br>\r\n",
			want: []Pair{
				{Date: "00:00", ID: "2009020100gm-00a9-0000-00000000"},
				{Date: "23:02", ID: "2009020123gm-00a9-0000-00000001"},
			},
		},
		{
			name: "multiple matches",
			text: mockLog,
			want: []Pair{
				{Date: "00:00", ID: "2009020100gm-00a9-0000-00000000"},
				{Date: "23:02", ID: "2009020123gm-00a9-0000-00000001"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIDs(tt.text))
		})
	}
}

func TestExtract_LinePayload(t *testing.T) {
	entries, err := Extract(LinePayload{Text: mockLog})
	require.NoError(t, err)

	expected := []model.LogRecord{
		{ID: "2009020100gm-00a9-0000-00000000", Date: "2009-02-01T00:00", NumPlayers: 4},
		{ID: "2009020123gm-00a9-0000-00000001", Date: "2009-02-01T23:02", NumPlayers: 4},
	}
	assert.Equal(t, expected, entries)
	for _, e := range entries {
		assert.Equal(t, model.StateDiscovered, e.State())
	}
}

func TestExtract_AnchorPayload(t *testing.T) {
	text := `<html><body>
<a href="http://tenhou.net/0/?log=2008120115gm-00b9-0000-0a1b2c3d">1</a><br>
<A HREF='/0/?wg=1&log=2008120116gm-00e1-0000-deadbeef'>2</A>
<a href="/other">none</a>
</body></html>`

	entries, err := Extract(AnchorPayload{Text: text})
	require.NoError(t, err)

	expected := []model.LogRecord{
		{ID: "2008120115gm-00b9-0000-0a1b2c3d", Date: "2008-12-01 15", NumPlayers: 3},
		{ID: "2008120116gm-00e1-0000-deadbeef", Date: "2008-12-01 16", NumPlayers: 4, IsTonpu: true},
	}
	assert.Equal(t, expected, entries)
}

func TestExtractLiteralIDs_NewShape(t *testing.T) {
	pairs, err := ExtractLiteralIDs(mockYakuman, YakumanVar)
	require.NoError(t, err)

	expected := []Pair{
		{Date: "01/31 23:57", ID: "2025013123gm-0001-0000-12b924e3"},
		{Date: "01/31 23:40", ID: "2025013123gm-0089-0000-a148333d"},
	}
	assert.Equal(t, expected, pairs)
}

func TestExtractLiteralIDs_OldShape(t *testing.T) {
	text := `ykm=[
['10/01 12:00','name','[1,[12],[],12]',[39],'2006100112gm-0009-0000-00000001','x'],
['10/02 13:30','name2','[2,[13],[],13]',[40],'2006100213gm-0001-0000-00000002']
];`

	pairs, err := ExtractLiteralIDs(text, YakumanVar)
	require.NoError(t, err)

	expected := []Pair{
		{Date: "10/01 12:00", ID: "2006100112gm-0009-0000-00000001"},
		{Date: "10/02 13:30", ID: "2006100213gm-0001-0000-00000002"},
	}
	assert.Equal(t, expected, pairs)
}

func TestExtractLiteralIDs_OldShapeShortRows(t *testing.T) {
	text := `ykm=[['10/01 12:00','name','hand','2006100112gm-0009-0000-00000001'],['10/02 13:30','name2','hand','2006100213gm-0001-0000-00000002']];`

	pairs, err := ExtractLiteralIDs(text, YakumanVar)
	require.NoError(t, err)
	assert.Equal(t, []Pair{
		{Date: "10/01 12:00", ID: "2006100112gm-0009-0000-00000001"},
		{Date: "10/02 13:30", ID: "2006100213gm-0001-0000-00000002"},
	}, pairs)
}

func TestExtractLiteralIDs_Empty(t *testing.T) {
	text := "total=580570;\nupdated=\"2025/02/01 00:12\";\nykm=[];\nsw();\n"

	pairs, err := ExtractLiteralIDs(text, YakumanVar)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestExtractLiteralIDs_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "array literal absent",
			text: strings.Replace(mockYakuman, "ykm=", "", 1),
		},
		{name: "number first", text: "ykm=[1,2,3,4,5];"},
		{name: "broken stride", text: "ykm=['01/31 23:57','a','b','c'];"},
		{name: "id is not a string", text: "ykm=['01/31 23:57','a','b',[1],5];"},
		{name: "mixed old shape", text: "ykm=[['01/31 23:57','a','b','c','id'],'x'];"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractLiteralIDs(tt.text, YakumanVar)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestExtract_LiteralPayload(t *testing.T) {
	entries, err := Extract(LiteralPayload{Text: mockYakuman, Year: 2025})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, model.LogRecord{
		ID:         "2025013123gm-0001-0000-12b924e3",
		Date:       "2025-01-31T23:57",
		NumPlayers: 4,
		IsTonpu:    true,
	}, entries[0])
	assert.Equal(t, "2025-01-31T23:40", entries[1].Date)
	assert.False(t, entries[1].IsTonpu)
}

func TestExtractMember(t *testing.T) {
	packed, err := gz.Compress([]byte(mockLog))
	require.NoError(t, err)

	tests := []struct {
		name    string
		member  string
		data    []byte
		wantLen int
	}{
		{name: "skips .log", member: "not_html.log", data: []byte("not a html"), wantLen: 0},
		{name: "skips .log.gz", member: "not_html.log.gz", data: []byte("not a html"), wantLen: 0},
		{name: "parses .html", member: "2009/scc20090201.html", data: []byte(mockLog), wantLen: 2},
		{name: "parses .html.gz", member: "2009/scc20090201.html.gz", data: packed, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ExtractMember(tt.member, bytes.NewReader(tt.data), false)
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestExtractMember_BrokenGzip(t *testing.T) {
	_, err := ExtractMember("scc20090201.html.gz", strings.NewReader("not gzip"), false)
	assert.Error(t, err)
}
