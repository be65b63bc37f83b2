package xmlutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOFX = `<?xml version="1.0" encoding="UTF-8"?>
<OFX>
  <BANKMSGSRSV1><STMTTRNRS><STMTRS>
    <BANKTRANLIST>
      <STMTTRN>
        <TRNTYPE>DEBIT</TRNTYPE>
        <DTPOSTED>20260121120000[-3:BRT]</DTPOSTED>
        <TRNAMT>-46.00</TRNAMT>
        <FITID>abc</FITID>
        <MEMO>Compra no débito
          Sonda Supermercados</MEMO>
      </STMTTRN>
      <STMTTRN>
        <TRNTYPE>CREDIT</TRNTYPE>
        <DTPOSTED>20260122</DTPOSTED>
        <TRNAMT>500.00</TRNAMT>
        <NAME>Resgate CDB</NAME>
      </STMTTRN>
    </BANKTRANLIST>
  </STMTRS></STMTTRNRS></BANKMSGSRSV1>
</OFX>`

func TestGetOrEmpty(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		index    int
		expected string
	}{
		{"valid index returns value", []string{"a", "b", "c"}, 1, "b"},
		{"first index", []string{"first", "second"}, 0, "first"},
		{"index out of bounds returns empty", []string{"a", "b"}, 5, ""},
		{"negative index returns empty", []string{"a"}, -1, ""},
		{"nil slice returns empty", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetOrEmpty(tt.slice, tt.index))
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Compra no débito Sonda", CleanText("  Compra no\tdébito\n   Sonda "))
	assert.Equal(t, "", CleanText(" \n "))
}

func TestParseXML(t *testing.T) {
	_, err := ParseXML(strings.NewReader("<OFX><unclosed></OFX>"))
	assert.Error(t, err)
}

func TestOFXPaths(t *testing.T) {
	root, err := ParseXML(strings.NewReader(sampleOFX))
	require.NoError(t, err)

	paths := DefaultOFXPaths()
	nodes, err := Nodes(root, paths.Transaction)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "DEBIT", NodeText(nodes[0], paths.Type))
	assert.Equal(t, "-46.00", NodeText(nodes[0], paths.Amount))
	assert.Equal(t, "Compra no débito Sonda Supermercados", NodeText(nodes[0], paths.Memo))
	assert.Equal(t, "", NodeText(nodes[0], paths.Name))
	assert.Equal(t, "Resgate CDB", NodeText(nodes[1], paths.Name))

	amounts, err := ExtractFromXML(root, "//STMTTRN/TRNAMT")
	require.NoError(t, err)
	assert.Equal(t, []string{"-46.00", "500.00"}, amounts)

	_, err = Nodes(root, "//[")
	assert.Error(t, err)
}
