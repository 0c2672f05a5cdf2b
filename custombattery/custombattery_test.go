// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package custombattery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokerand/smokerand/stattest"
)

func testRegistry() Registry {
	return Registry{
		"monobit": stattest.MonobitFreqTest(200),
		"gap":     stattest.GapTest(1, 20),
	}
}

func TestParseTextResolvesRecordsAgainstRegistry(t *testing.T) {
	text := "test = monobit\noptions = \n\ntest = gap\n"
	b, err := ParseText(strings.NewReader(text), "mine", testRegistry())
	require.NoError(t, err)
	assert.Equal(t, "mine", b.Name)
	require.Len(t, b.Tests, 2)
	assert.Equal(t, "monobit", b.Tests[0].Name)
	assert.Equal(t, "gap", b.Tests[1].Name)
}

func TestParseTextAppliesPenaltyOverride(t *testing.T) {
	text := "test = monobit\npenalty = 9.5\n"
	b, err := ParseText(strings.NewReader(text), "mine", testRegistry())
	require.NoError(t, err)
	require.Len(t, b.Tests, 1)
	assert.Equal(t, 9.5, b.Tests[0].Penalty)
}

func TestParseTextRejectsUnknownKey(t *testing.T) {
	text := "test = monobit\nbogus = 1\n"
	_, err := ParseText(strings.NewReader(text), "mine", testRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestParseTextRejectsUnknownTest(t *testing.T) {
	text := "test = not-registered\n"
	_, err := ParseText(strings.NewReader(text), "mine", testRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTest)
}

func TestParseTextRejectsRecordWithoutTestKey(t *testing.T) {
	text := "options = foo\n\ntest = monobit\n"
	_, err := ParseText(strings.NewReader(text), "mine", testRegistry())
	assert.Error(t, err)
}

func TestParseTextBlankLinesSeparateRecordsRegardlessOfCount(t *testing.T) {
	text := "test = monobit\n\n\n\ntest = gap\n"
	b, err := ParseText(strings.NewReader(text), "mine", testRegistry())
	require.NoError(t, err)
	assert.Len(t, b.Tests, 2)
}

func TestParseTextIgnoresTrailingBlankLines(t *testing.T) {
	text := "test = monobit\n\n"
	b, err := ParseText(strings.NewReader(text), "mine", testRegistry())
	require.NoError(t, err)
	assert.Len(t, b.Tests, 1)
}

func TestSplitKeyValueTrimsWhitespace(t *testing.T) {
	key, value, ok := splitKeyValue("  test   =   monobit  ")
	require.True(t, ok)
	assert.Equal(t, "test", key)
	assert.Equal(t, "monobit", value)
}

func TestSplitKeyValueRejectsLineWithoutEquals(t *testing.T) {
	_, _, ok := splitKeyValue("not a record line")
	assert.False(t, ok)
}

func TestParseTextEmptyInputProducesEmptyBattery(t *testing.T) {
	b, err := ParseText(strings.NewReader(""), "mine", testRegistry())
	require.NoError(t, err)
	assert.Empty(t, b.Tests)
}
