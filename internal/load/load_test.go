package load

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Grammar A from spec.md section 8, in the on-disk format.
const grammarA = `6
S -> S + T
S -> T
T -> T * F
T -> F
F -> ( S )
F -> 1
1+1
(1)
1*1+1
1+
e
`

func Test_FromReader_grammarA(t *testing.T) {
	assert := assert.New(t)

	f, err := FromReader(strings.NewReader(grammarA))
	assert.NoError(err)
	assert.Equal("S", f.Grammar.StartSymbol())
	assert.Equal(6, f.Grammar.NumProductions())
	assert.Equal([]string{"1+1", "(1)", "1*1+1", "1+"}, f.Inputs)
}

// Grammar B from spec.md section 8: S -> ( S ) S | e.
const grammarB = `2
S -> ( S ) S
S -> e


()
(())
e
`

func Test_FromReader_epsilonProduction(t *testing.T) {
	assert := assert.New(t)

	f, err := FromReader(strings.NewReader(grammarB))
	assert.NoError(err)
	assert.True(f.Grammar.Production(1).IsEpsilon())
	assert.Equal([]string{"()", "(())"}, f.Inputs)
}

func Test_FromReader_rejectsNonIntegerHeader(t *testing.T) {
	_, err := FromReader(strings.NewReader("not-a-number\n"))
	assert.Error(t, err)
}

func Test_FromReader_rejectsMalformedProductionLine(t *testing.T) {
	_, err := FromReader(strings.NewReader("1\nS S\n"))
	assert.Error(t, err)
}

func Test_FromReader_rejectsTruncatedProductionList(t *testing.T) {
	_, err := FromReader(strings.NewReader("2\nS -> a\n"))
	assert.Error(t, err)
}
