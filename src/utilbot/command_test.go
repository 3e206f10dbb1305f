package utilbot

import (
	"testing"

	"github.com/kalexmills/simple-utils/src/utilbot/db"
	"github.com/kalexmills/simple-utils/src/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content  string
		expected Command
	}{
		{"reverse hello🌍", Command{Operation: OpReverse, Input: "hello🌍"}},
		{" reverse  two  spaces ", Command{Operation: OpReverse, Input: " two  spaces "}},
		{"reverse\nline1\nline2", Command{Operation: OpReverse, Input: "line1\nline2"}},
		{"reverse", Command{Operation: OpReverse}},
		{"words Hello, world!", Command{Operation: OpCountWords, Input: "Hello, world!"}},
		{"words", Command{Operation: OpCountWords}},
		{"c2f 37.5", Command{Operation: OpCelsiusToFahrenheit, Input: "37.5", Celsius: 37.5}},
		{"c2f  -40 ", Command{Operation: OpCelsiusToFahrenheit, Input: "-40", Celsius: -40}},
		{"stats", Command{Operation: OpStats}},
		{"help", Command{Operation: OpHelp}},
		{"feature on global Reverse CountWords", Command{Operation: OpFeatureOn, Target: "global", Features: db.ConfigReverse | db.ConfigCountWords}},
		{"feature  off <#1234>  RecordHistory", Command{Operation: OpFeatureOff, Target: "1234", Features: db.ConfigRecordHistory}},
		{"feature list <#1234>", Command{Operation: OpFeatureList, Target: "1234"}},
	}

	for _, tt := range tests {
		cmd, err := ParseCommand(tt.content)
		require.NoError(t, err, tt.content)
		assert.Equal(t, tt.expected, cmd, tt.content)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"flip abc",
		"c2f",
		"c2f warm",
		"feature",
		"feature toggle global Reverse",
		"feature on global",
		"feature list",
		"feature on #general Reverse",
		"feature on <#abc> Reverse",
		"feature on global Haiku",
	}
	for _, content := range tests {
		_, err := ParseCommand(content)
		assert.Error(t, err, content)
	}

	_, err := ParseCommand("c2f warm")
	assert.ErrorIs(t, err, utils.ErrInvalidInputType)
}

func TestRespond(t *testing.T) {
	tests := []struct {
		cmd      Command
		expected string
	}{
		{Command{Operation: OpReverse, Input: "hello🌍"}, "🌍olleh"},
		{Command{Operation: OpReverse, Input: "  "}, "(nothing to reverse)"},
		{Command{Operation: OpCountWords, Input: "Hello, world!"}, "2 words"},
		{Command{Operation: OpCountWords, Input: "hello"}, "1 word"},
		{Command{Operation: OpCountWords, Input: " \t\n"}, "0 words"},
		{Command{Operation: OpCelsiusToFahrenheit, Celsius: 37.5}, "37.5°C is 99.5°F"},
		{Command{Operation: OpCelsiusToFahrenheit, Celsius: 37}, "37°C is 98.6°F"},
		{Command{Operation: OpCelsiusToFahrenheit, Celsius: -40}, "-40°C is -40°F"},
		{Command{Operation: OpCelsiusToFahrenheit, Celsius: -273.15}, "-273.15°C is -459.67°F"},
	}
	for _, tt := range tests {
		reply, err := Respond(tt.cmd)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, reply)
	}

	_, err := Respond(Command{Operation: OpHelp})
	assert.Error(t, err)
}

func TestOperation_Feature(t *testing.T) {
	assert.Equal(t, db.ConfigReverse, OpReverse.Feature())
	assert.Equal(t, db.ConfigCountWords, OpCountWords.Feature())
	assert.Equal(t, db.ConfigConvertTemperature, OpCelsiusToFahrenheit.Feature())
	assert.Zero(t, OpHelp.Feature())
	assert.True(t, OpFeatureList.IsAdmin())
	assert.False(t, OpStats.IsAdmin())
}

func TestHelpText(t *testing.T) {
	help := helpText("!util")
	assert.Contains(t, help, "`!util reverse [text]`")
	assert.NotContains(t, help, "~~~")
	assert.NotContains(t, help, "{prefix}")
}
