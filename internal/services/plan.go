package services

import "farm-advisor/internal/models"

var topicTasks = map[models.Topic][]string{
	models.TopicSoil:     {"Test soil pH", "Apply compost"},
	models.TopicWater:    {"Irrigate every 3 days", "Monitor soil moisture"},
	models.TopicDisease:  {"Inspect crops weekly", "Apply preventive spray if needed"},
	models.TopicProducts: {"Use Bio-Fertilizer XL", "Track growth response"},
}

var topicBoxes = map[models.Topic]models.TopicBox{
	models.TopicSoil: {
		Key:     models.TopicSoil,
		Title:   "Soil Health",
		Summary: "Maintain optimal pH, apply compost as needed.",
		Color:   "text-plant-green-core",
	},
	models.TopicWater: {
		Key:     models.TopicWater,
		Title:   "Water Management",
		Summary: "Irrigate every 3 days; track moisture levels.",
		Color:   "text-air-blue-core",
	},
	models.TopicDisease: {
		Key:     models.TopicDisease,
		Title:   "Disease & Pests",
		Summary: "Monitor for leaf spots; consider preventive sprays.",
		Color:   "text-red-700",
	},
	models.TopicProducts: {
		Key:     models.TopicProducts,
		Title:   "Recommended Products",
		Summary: "Bio-Fertilizer XL to enhance root development.",
		Color:   "text-sun-orange-mid",
	},
}

// ComposeTasks concatenates the task lists of the given topics in the order
// they were selected. Unknown topics contribute nothing.
func ComposeTasks(selected []models.Topic) []string {
	tasks := []string{}
	for _, topic := range selected {
		tasks = append(tasks, topicTasks[topic]...)
	}
	return tasks
}

// TopicBoxes returns the box metadata of every topic in display order.
func TopicBoxes() []models.TopicBox {
	boxes := make([]models.TopicBox, 0, len(models.Topics))
	for _, topic := range models.Topics {
		boxes = append(boxes, topicBoxes[topic])
	}
	return boxes
}
