package services

import (
	"farm-advisor/internal/i18n"
	"farm-advisor/internal/models"
)

type BoxView struct {
	models.TopicBox
	Selected bool `json:"selected"`
}

type StressView struct {
	Value    float64  `json:"value"`
	Percent  int      `json:"percent"`
	Severity Severity `json:"severity"`
}

type Bubble struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PageView is everything the page renders for one state. Sections after the
// form are only populated once the form has been submitted.
type PageView struct {
	State         models.PageState  `json:"state"`
	ShowResults   bool              `json:"show_results"`
	Crops         []models.CropType `json:"crops"`
	Diurnal       *StressView       `json:"diurnal,omitempty"`
	Night         *StressView       `json:"night,omitempty"`
	Boxes         []BoxView         `json:"boxes"`
	SelectedBoxes []models.TopicBox `json:"selected_boxes"`
	Tasks         []string          `json:"tasks"`
	Bubbles       []Bubble          `json:"bubbles"`
	Text          map[string]string `json:"text"`
}

var bubbleKeys = []struct {
	key, titleKey, textKey string
}{
	{"fellowFarmers", "bubbleFarmers", "bubbleFarmersText"},
	{"experts", "bubbleExperts", "bubbleExpertsText"},
	{"newIdeas", "bubbleIdeas", "bubbleIdeasText"},
}

func IsBubble(key string) bool {
	for _, b := range bubbleKeys {
		if b.key == key {
			return true
		}
	}
	return false
}

func BuildView(state models.PageState, catalog *i18n.Catalog) PageView {
	view := PageView{
		State:         state,
		ShowResults:   state.Submitted,
		Crops:         models.CropTypes,
		Boxes:         []BoxView{},
		SelectedBoxes: []models.TopicBox{},
		Tasks:         []string{},
		Bubbles:       []Bubble{},
		Text:          catalog.Table(state.Lang),
	}

	if !state.Submitted {
		return view
	}

	if state.Stress != nil {
		view.Diurnal = newStressView(state.Stress.DiurnalHeatStress)
		view.Night = newStressView(state.Stress.NightHeatStress)
		for _, box := range TopicBoxes() {
			view.Boxes = append(view.Boxes, BoxView{TopicBox: box, Selected: state.IsSelected(box.Key)})
		}
	}

	for _, box := range TopicBoxes() {
		if state.IsSelected(box.Key) {
			view.SelectedBoxes = append(view.SelectedBoxes, box)
		}
	}

	view.Tasks = ComposeTasks(state.Selected)

	for _, b := range bubbleKeys {
		view.Bubbles = append(view.Bubbles, Bubble{
			Key:         b.key,
			Title:       catalog.T(state.Lang, b.titleKey),
			Description: catalog.T(state.Lang, b.textKey),
		})
	}

	return view
}

func newStressView(value float64) *StressView {
	return &StressView{
		Value:    value,
		Percent:  StressPercent(value),
		Severity: Classify(value),
	}
}
