package models

type Topic string

const (
	TopicSoil     Topic = "soil"
	TopicWater    Topic = "water"
	TopicDisease  Topic = "disease"
	TopicProducts Topic = "products"
)

// Topics is listed in display order.
var Topics = []Topic{TopicSoil, TopicWater, TopicDisease, TopicProducts}

func (t Topic) Valid() bool {
	for _, topic := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

type TopicBox struct {
	Key     Topic  `json:"key"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Color   string `json:"color"`
}
