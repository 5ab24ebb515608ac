package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScalar_TrimsAndCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "limestone sarcophagus", NormalizeScalar("  limestone \t sarcophagus \n"))
	assert.Equal(t, "", NormalizeScalar("   "))
	assert.Equal(t, "", NormalizeScalar(""))
}

func TestNormalizeScalar_Idempotent(t *testing.T) {
	inputs := []string{"  a  b ", "a b", "", " \t "}
	for _, in := range inputs {
		once := NormalizeScalar(in)
		assert.Equal(t, once, NormalizeScalar(once))
	}
}

func TestNormalizeTag_Lowercases(t *testing.T) {
	assert.Equal(t, "kindergrab", NormalizeTag("  KinderGrab "))
	assert.Equal(t, "burial goods", NormalizeTag("Burial   Goods"))
}

func TestSplitDelimited_DropsEmptyPieces(t *testing.T) {
	assert.Equal(t, []string{"child", "burial"}, SplitDelimited("child, burial", ","))
	assert.Equal(t, []string{"a", "b"}, SplitDelimited(" a ,, b ,", ","))
	assert.Empty(t, SplitDelimited("", ","))
	assert.Empty(t, SplitDelimited(" , , ", ","))
}
