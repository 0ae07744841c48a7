package automaton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workedInput() TextInput {
	return TextInput{
		States:      "q0,q1,q2",
		Symbols:     "a,b",
		Start:       "q0",
		Accept:      "q2",
		Transitions: "q0,a->q0 q1\nq1,b->q2",
	}
}

func TestParseText(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		a, warnings, err := ParseText(workedInput(), Lenient)
		require.NoError(t, err)
		assert.Empty(t, warnings)

		assert.Equal(t, []string{"q0", "q1", "q2"}, a.States())
		assert.Equal(t, []string{"a", "b"}, a.Symbols())
		assert.Equal(t, "q0", a.Start())
		assert.Equal(t, []string{"q2"}, a.Accept())
		assert.Equal(t, []string{"q0", "q1"}, a.Targets("q0", "a"))
		assert.Equal(t, []string{"q2"}, a.Targets("q1", "b"))
	})

	t.Run("spaces and blank items are ignored", func(t *testing.T) {
		a, _, err := ParseText(TextInput{
			States:      " q0 , q1,,",
			Symbols:     "a, b",
			Start:       " q0 ",
			Accept:      "",
			Transitions: "\r\n  q0 , a ->  q1   q0 \r\n\n",
		}, Strict)
		require.NoError(t, err)

		assert.Equal(t, []string{"q0", "q1"}, a.States())
		assert.Equal(t, []string{"a", "b"}, a.Symbols())
		assert.Empty(t, a.Accept())
		assert.Equal(t, []string{"q0", "q1"}, a.Targets("q0", "a"))
	})

	t.Run("lenient skips malformed lines", func(t *testing.T) {
		in := workedInput()
		in.Transitions = "q0,a->q0 q1\nthis is not a rule\nq1,b->q2\nq1->q2"

		a, warnings, err := ParseText(in, Lenient)
		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Equal(t, 2, warnings[0].Line)
		assert.Equal(t, "this is not a rule", warnings[0].Text)
		assert.ErrorIs(t, warnings[0], ErrMalformedTransition)
		assert.Equal(t, 4, warnings[1].Line)

		assert.Equal(t, 2, a.GetNumTransitions())
		assert.Equal(t, 3, Convert(a).GetNumStates())
	})

	t.Run("strict rejects malformed lines", func(t *testing.T) {
		in := workedInput()
		in.Transitions = "q0,a->q0 q1\nq1,b q2"

		_, _, err := ParseText(in, Strict)
		require.Error(t, err)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 2, perr.Line)
		assert.ErrorIs(t, err, ErrMalformedTransition)
	})

	t.Run("strict validates references", func(t *testing.T) {
		in := workedInput()
		in.Transitions = "q0,a->q3"

		_, _, err := ParseText(in, Strict)
		assert.ErrorIs(t, err, ErrUndeclaredState)

		a, _, err := ParseText(in, Lenient)
		require.NoError(t, err)
		assert.Equal(t, []string{"q3"}, a.Targets("q0", "a"))
	})

	t.Run("missing start state", func(t *testing.T) {
		in := workedInput()
		in.Start = "  "

		_, _, err := ParseText(in, Lenient)
		assert.ErrorIs(t, err, ErrNoStartState)
	})
}

func TestParseRules(t *testing.T) {
	tests := []struct {
		line string
		want Transition
		err  string
	}{
		{line: "q0,a->q1", want: Transition{From: "q0", Symbol: "a", To: []string{"q1"}}},
		{line: "q0 , a -> q1\tq2", want: Transition{From: "q0", Symbol: "a", To: []string{"q1", "q2"}}},
		{line: "q0,a q1", err: `missing "->"`},
		{line: "q0,a->q1->q2", err: `more than one "->"`},
		{line: "q0->q1", err: "expected STATE,SYMBOL"},
		{line: "q0,a,b->q1", err: "expected STATE,SYMBOL"},
		{line: ",a->q1", err: "empty state or symbol"},
		{line: "q0,->q1", err: "empty state or symbol"},
		{line: "q0,a->", err: "no target states"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rules, warnings, err := ParseRules(tt.line, Lenient)
			require.NoError(t, err)

			if tt.err == "" {
				assert.Empty(t, warnings)
				assert.Equal(t, []Transition{tt.want}, rules)
				return
			}

			assert.Empty(t, rules)
			require.Len(t, warnings, 1)
			assert.ErrorIs(t, warnings[0], ErrMalformedTransition)
			assert.Contains(t, warnings[0].Error(), tt.err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList(" a,b ,, c,"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
}

func TestParsePolicyString(t *testing.T) {
	assert.Equal(t, "lenient", Lenient.String())
	assert.Equal(t, "strict", Strict.String())
}
