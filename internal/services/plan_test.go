package services

import (
	"testing"

	"farm-advisor/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComposeTasks_Soil(t *testing.T) {
	assert.Equal(t, []string{"Test soil pH", "Apply compost"}, ComposeTasks([]models.Topic{models.TopicSoil}))
}

func TestComposeTasks_Empty(t *testing.T) {
	assert.Empty(t, ComposeTasks(nil))
	assert.NotNil(t, ComposeTasks(nil))
}

func TestComposeTasks_SelectionOrder(t *testing.T) {
	got := ComposeTasks([]models.Topic{
		models.TopicProducts,
		models.TopicSoil,
		models.TopicDisease,
		models.TopicWater,
	})

	assert.Equal(t, []string{
		"Use Bio-Fertilizer XL", "Track growth response",
		"Test soil pH", "Apply compost",
		"Inspect crops weekly", "Apply preventive spray if needed",
		"Irrigate every 3 days", "Monitor soil moisture",
	}, got)
}

func TestComposeTasks_IgnoresUnknown(t *testing.T) {
	got := ComposeTasks([]models.Topic{"weather", models.TopicWater})
	assert.Equal(t, []string{"Irrigate every 3 days", "Monitor soil moisture"}, got)
}

func TestTopicBoxes_DisplayOrder(t *testing.T) {
	boxes := TopicBoxes()
	if assert.Len(t, boxes, 4) {
		for i, topic := range models.Topics {
			assert.Equal(t, topic, boxes[i].Key)
			assert.NotEmpty(t, boxes[i].Title)
		}
	}
}
