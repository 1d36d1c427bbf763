package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Intent
	}{
		{name: "money wins over greeting", text: "hello, I have a question about billing", want: IntentEscalateMoney},
		{name: "currency symbol", text: "where is my $200", want: IntentEscalateMoney},
		{name: "contract terms", text: "Can you explain the CONTRACT?", want: IntentEscalateMoney},
		{name: "greeting", text: "Hello there", want: IntentGreeting},
		{name: "how to", text: "how do I claim a bounty", want: IntentGreeting},
		{name: "greeting wins over bug", text: "help, upload error", want: IntentGreeting},
		{name: "bug", text: "the upload keeps crashing with an error", want: IntentEscalateBug},
		{name: "unknown", text: "pineapple", want: IntentUnknown},
		{name: "empty", text: "", want: IntentUnknown},
		{name: "whitespace", text: " \t\n ", want: IntentUnknown},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()

	inputs := []string{"hello", "refund please", "it crashed", "???", ""}
	for _, input := range inputs {
		first := Classify(input)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Classify(input), "input %q", input)
		}
	}
}

func TestClassifyMoneyPrecedenceAcrossGreetingKeywords(t *testing.T) {
	t.Parallel()

	for _, greeting := range greetingKeywords {
		for _, money := range moneyKeywords {
			text := greeting + " " + money
			assert.Equal(t, IntentEscalateMoney, Classify(text), "input %q", text)
		}
	}
}

func TestAutoResponseFor(t *testing.T) {
	t.Parallel()

	for _, intent := range []Intent{IntentGreeting, IntentUnknown} {
		reply, ok := AutoResponseFor(intent)
		assert.True(t, ok, "intent %s", intent)
		assert.NotEmpty(t, reply, "intent %s", intent)
	}

	for _, intent := range []Intent{IntentEscalateMoney, IntentEscalateBug, IntentTechSupport} {
		reply, ok := AutoResponseFor(intent)
		assert.False(t, ok, "intent %s", intent)
		assert.Empty(t, reply, "intent %s", intent)
	}
}
