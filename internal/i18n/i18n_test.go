package i18n

import (
	"testing"

	"farm-advisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedTables(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Analysis Complete", c.T(models.LangEN, "analysisComplete"))
	assert.Equal(t, "Analyse abgeschlossen", c.T(models.LangDE, "analysisComplete"))
	assert.ElementsMatch(t, []models.Language{models.LangEN, models.LangDE}, c.Languages())
}

func TestT_Fallbacks(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	// Only present in the English table.
	assert.Equal(t, "Action Plan", c.T(models.LangDE, "actionPlanTitle"))
	assert.Equal(t, "noSuchKey", c.T(models.LangDE, "noSuchKey"))
}

func TestTable_CoversFallbackKeys(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	de := c.Table(models.LangDE)
	assert.Equal(t, "Mitbauern", de["bubbleFarmers"])
	assert.Equal(t, "Recommended Tasks", de["recommendedTasks"])
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("en: [unterminated"), models.LangEN)
	assert.Error(t, err)

	_, err = Parse([]byte("de:\n  a: b\n"), models.LangEN)
	assert.Error(t, err)
}
