package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFlag_String(t *testing.T) {
	assert.Equal(t, "none", ConfigFlag(0).String())
	assert.Equal(t, "Reverse", ConfigReverse.String())
	assert.Equal(t, "CountWords, RecordHistory", ConfigCountWords.Or(ConfigRecordHistory).String())
	assert.Equal(t, "Reverse, CountWords, ConvertTemperature, RecordHistory", ConfigAll.String())
}

func TestConfigFlag_AndOr(t *testing.T) {
	f := ConfigReverse.Or(ConfigConvertTemperature)
	assert.True(t, f.Reverse())
	assert.True(t, f.ConvertTemperature())
	assert.False(t, f.CountWords())

	f = f.And(^ConfigReverse)
	assert.False(t, f.Reverse())
	assert.True(t, f.ConvertTemperature())
}
